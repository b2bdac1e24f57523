package handler

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

const (
	cmdGaugeKill = "killGauge()"
	aaEntrypoint = "20221124-authorizer-adaptor-entrypoint/AuthorizerAdaptorEntrypoint"
)

// bridgeSelectors are probed in a fixed order when a root gauge's class name
// does not give its chain away.
var bridgeSelectors = []string{
	"getPolygonBridge",
	"getArbitrumBridge",
	"getGnosisBridge",
	"getOptimismBridge",
	"getPolygonZkEVMBridge",
	"getAvalancheBridge",
	"getBaseBridge",
}

// GaugeKill reports gauge removals executed through the authorizer adaptor:
// transactions wrapping calldata for a target contract, where the calldata
// decodes to a bare killGauge() against the target's verified ABI.
func GaugeKill(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	encoded := tx.Input("data")
	if encoded == "" {
		return nil, nil
	}
	target := tx.Input("target")
	if target == "" {
		return nil, nil
	}

	// Targets that are not verified mainnet contracts do not decode; they are
	// not gauge kills and fall through to the catch-all.
	gaugeInfo, err := env.Inspector.Inspect(utils.ChainMainnet, target)
	if err != nil {
		logrus.Debugf("inspect kill target %s is err: %v", target, err)
		return nil, nil
	}
	if !gaugeInfo.Verified {
		return nil, nil
	}
	method, err := gaugeInfo.MethodByData(encoded)
	if err != nil {
		logrus.Debugf("decode calldata against %s is err: %v", target, err)
		return nil, nil
	}
	if method.Sig != cmdGaugeKill || len(method.Inputs) != 0 {
		logrus.Infof("parse kill gauge: tx %d in %s is not a gauge kill transaction", txIndex, payload.FileName)
		return nil, nil
	}

	gaugeAddress := target
	gaugeCap := utils.SentinelNA
	if gaugeInfo.HasMethod("getRelativeWeightCap") {
		cap, err := env.Chain.RelativeWeightCap(utils.ChainMainnet, gaugeAddress)
		if err != nil {
			return nil, fmt.Errorf("get weight cap of gauge %s is err: %v", gaugeAddress, err)
		}
		gaugeCap = fmt.Sprintf("%s%%", cap)
	}

	chain := gaugeChain(gaugeInfo)
	pool, style, err := extractPool(env, chain, gaugeAddress, gaugeInfo)
	if err != nil {
		return nil, err
	}

	toString := "!!NOT-FOUND??"
	if toName := env.Book.NameOf(utils.ChainMainnet, tx.To); toName == aaEntrypoint {
		toString = "AAEntrypoint"
	} else if toName != "" {
		toString = fmt.Sprintf("!!%s??", toName)
	}

	row := model.ReportRow{Handler: HandlerGaugeKill, TxIndex: txIndex}
	row.Add("function", fmt.Sprintf("%s/%s", toString, method.Sig)).
		Add("chain", utils.DisplayChain(chain)).
		Add("pool_id", pool.PoolID).
		Add("symbol", pool.Symbol).
		Add("a", pool.AFactor).
		Add("gauge_address", utils.ChecksumAddress(gaugeAddress)).
		Add("fee", fmt.Sprintf("%s%%", pool.Fee)).
		Add("cap", gaugeCap).
		Add("style", style).
		Add("tokens", strings.Join(pool.Tokens, "\n")).
		Add("bip", payload.BIPNumber(tx))
	return &row, nil
}

// gaugeChain infers the chain a root gauge feeds: first from its verified
// class name, then by probing bridge getter selectors, else mainnet.
func gaugeChain(gaugeInfo *model.ContractInfo) string {
	if chain, ok := utils.RootGaugeClassToChain[gaugeInfo.Name]; ok {
		return chain
	}
	for _, selector := range bridgeSelectors {
		if gaugeInfo.HasMethod(selector) {
			return utils.BridgeSelectorToChain[selector]
		}
	}
	return utils.ChainMainnet
}
