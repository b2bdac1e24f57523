package utils

import "strings"

const (
	ChainMainnet   = "mainnet"
	ChainPolygon   = "polygon"
	ChainArbitrum  = "arbitrum"
	ChainOptimism  = "optimism"
	ChainGnosis    = "gnosis"
	ChainZkEVM     = "zkevm"
	ChainAvalanche = "avalanche"
	ChainBase      = "base"
	ChainEmpty     = ""
)

// GaugeTypeToChain maps the gauge adder's gaugeType argument to a chain name.
// Update this if needed by pulling gauge types from the gauge adder contract.
var GaugeTypeToChain = map[string]string{
	"Ethereum":                     ChainMainnet,
	"Polygon":                      ChainPolygon,
	"Arbitrum":                     ChainArbitrum,
	"Optimism":                     ChainOptimism,
	"Gnosis":                       ChainGnosis,
	"PolygonZkEvm":                 ChainZkEVM,
	"Avalanche":                    ChainAvalanche,
	"Base":                         ChainBase,
	"EthereumSingleRecipientGauge": ChainMainnet,
}

// RootGaugeClassToChain maps the verified contract class name of a root gauge
// to the chain its child gauge lives on.
var RootGaugeClassToChain = map[string]string{
	"PolygonRootGauge":      ChainPolygon,
	"ArbitrumRootGauge":     ChainArbitrum,
	"OptimismRootGauge":     ChainOptimism,
	"GnosisRootGauge":       ChainGnosis,
	"PolygonZkEVMRootGauge": ChainZkEVM,
	"AvalancheRootGauge":    ChainAvalanche,
	"BaseRootGauge":         ChainBase,
}

// BridgeSelectorToChain resolves the chain of a root gauge whose class name is
// unknown by probing its bridge getter selectors.
var BridgeSelectorToChain = map[string]string{
	"getPolygonBridge":      ChainPolygon,
	"getArbitrumBridge":     ChainArbitrum,
	"getOptimismBridge":     ChainOptimism,
	"getGnosisBridge":       ChainGnosis,
	"getPolygonZkEVMBridge": ChainZkEVM,
	"getAvalancheBridge":    ChainAvalanche,
	"getBaseBridge":         ChainBase,
}

var chainIDsByName = map[string]int64{
	ChainMainnet:   1,
	ChainOptimism:  10,
	ChainGnosis:    100,
	ChainPolygon:   137,
	ChainZkEVM:     1101,
	ChainBase:      8453,
	ChainArbitrum:  42161,
	ChainAvalanche: 43114,
}

// ChainIDByName returns the default chain id for a chain name, 0 when unknown.
func ChainIDByName(chain string) int64 {
	return chainIDsByName[strings.ToLower(chain)]
}

// ChainNameByID returns the default chain name for a chain id, "" when unknown.
func ChainNameByID(chainID int64) string {
	for name, id := range chainIDsByName {
		if id == chainID {
			return name
		}
	}
	return ChainEmpty
}

// DisplayChain returns the short chain label used in report rows. It only
// differs from the canonical name for avalanche, which reads "avax".
func DisplayChain(chain string) string {
	if chain == ChainAvalanche {
		return "avax"
	}
	return chain
}

func GetChainFromQuery(chain string) string {
	switch chain {
	case ChainEmpty:
		return ChainMainnet
	default:
		return chain
	}
}
