package utils

import "strings"

const (
	EtherScanAPIURL  = "https://api.etherscan.io/api"
	PolygonScanAPI   = "https://api.polygonscan.com/api"
	ArbiScanAPI      = "https://api.arbiscan.io/api"
	OptimismScanAPI  = "https://api-optimistic.etherscan.io/api"
	GnosisScanAPI    = "https://api.gnosisscan.io/api"
	ZkEVMScanAPI     = "https://api-zkevm.polygonscan.com/api"
	SnowTraceAPI     = "https://api.snowtrace.io/api"
	BaseScanAPI      = "https://api.basescan.org/api"
	SourceCodeAction = "getsourcecode"
)

// GetScanAPI returns the etherscan-compatible API endpoint for a chain,
// defaulting to mainnet etherscan.
func GetScanAPI(chain string) string {
	switch strings.ToLower(chain) {
	case ChainMainnet:
		return EtherScanAPIURL
	case ChainPolygon:
		return PolygonScanAPI
	case ChainArbitrum:
		return ArbiScanAPI
	case ChainOptimism:
		return OptimismScanAPI
	case ChainGnosis:
		return GnosisScanAPI
	case ChainZkEVM:
		return ZkEVMScanAPI
	case ChainAvalanche:
		return SnowTraceAPI
	case ChainBase:
		return BaseScanAPI
	default:
		return EtherScanAPIURL
	}
}
