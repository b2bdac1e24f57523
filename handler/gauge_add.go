package handler

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// gaugeAddInputs are the input keys a gauge adder call carries its gauge
// address under, probed in order.
var gaugeAddInputs = []string{"gauge", "rootGauge"}

const gaugeAdderName = "20230519-gauge-adder-v4/GaugeAdder"

// GaugeAdd reports gauge additions going through the gauge adder: transactions
// carrying a gauge/rootGauge input plus a gaugeType, addressed to the gauge
// adder deployment.
func GaugeAdd(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	gaugeAddress := tx.FirstInput(gaugeAddInputs...)
	if gaugeAddress == "" {
		return nil, nil
	}
	gaugeType := tx.Input("gaugeType")
	if gaugeType == "" {
		logrus.Warnf("no gauge type on tx %d in %s, cannot process transaction", txIndex, payload.FileName)
		return nil, nil
	}
	adderAddress, err := env.Book.SearchUnique(utils.ChainMainnet, gaugeAdderName)
	if err != nil {
		return nil, err
	}
	if utils.NormalizeAddress(tx.To) != utils.NormalizeAddress(adderAddress) {
		return nil, nil
	}

	chain, ok := utils.GaugeTypeToChain[gaugeType]
	if !ok {
		return nil, fmt.Errorf("unknown gauge type %s on tx %d in %s", gaugeType, txIndex, payload.FileName)
	}

	gaugeInfo, err := env.Inspector.Inspect(utils.ChainMainnet, gaugeAddress)
	if err != nil {
		return nil, err
	}
	gaugeCap := utils.SentinelNA
	if gaugeInfo.HasMethod("getRelativeWeightCap") {
		cap, err := env.Chain.RelativeWeightCap(utils.ChainMainnet, gaugeAddress)
		if err != nil {
			return nil, fmt.Errorf("get weight cap of gauge %s is err: %v", gaugeAddress, err)
		}
		gaugeCap = fmt.Sprintf("%s%%", cap)
	}

	pool, style, err := extractPool(env, chain, gaugeAddress, gaugeInfo)
	if err != nil {
		return nil, err
	}

	toString := "!!NOT-FOUND??"
	if toName := env.Book.NameOf(utils.ChainMainnet, tx.To); toName == gaugeAdderName {
		toString = "GaugeAdderV4"
	} else if toName != "" {
		toString = fmt.Sprintf("!!%s??", toName)
	}

	row := model.ReportRow{Handler: HandlerGaugeAdd, TxIndex: txIndex}
	row.Add("function", fmt.Sprintf("%s/%s", toString, tx.MethodName())).
		Add("chain", utils.DisplayChain(chain)).
		Add("pool_id_and_address", fmt.Sprintf("%s \npool_address: %s", pool.PoolID, pool.Address)).
		Add("symbol_and_info", fmt.Sprintf("%s \nfee: %s, a-factor: %s", pool.Symbol, pool.Fee, pool.AFactor)).
		Add("gauge_address_and_info", fmt.Sprintf("%s\nStyle: %s, cap: %s", utils.ChecksumAddress(gaugeAddress), style, gaugeCap)).
		Add("tokens", strings.Join(pool.Tokens, "\n")).
		Add("rate_providers", strings.Join(pool.RateProviders, "\n")).
		Add("bip", payload.BIPNumber(tx))
	return &row, nil
}
