package handler

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// Uncovered builds the catch-all report. It diffs the transaction indices the
// prior handlers claimed against the full index set of every payload, so a
// transaction no classifier recognized still shows up in the report instead of
// silently vanishing.
func Uncovered(env *Env, payloads []*model.Payload, prior []RunResult) model.HandlerReport {
	covered := map[string]mapset.Set[int]{}
	for _, payload := range payloads {
		covered[payload.FileName] = mapset.NewSet[int]()
	}
	for _, result := range prior {
		for fileName, report := range result.Reports {
			for _, row := range report.Rows {
				covered[fileName].Add(row.TxIndex)
			}
		}
	}

	reports := model.HandlerReport{}
	for _, payload := range payloads {
		all := mapset.NewSet[int]()
		for i := range payload.Transactions {
			all.Add(i)
		}
		uncovered := all.Difference(covered[payload.FileName])
		logrus.Infof("%s coverage: %d of %d transactions claimed", payload.FileName,
			covered[payload.FileName].Cardinality(), len(payload.Transactions))
		if uncovered.Cardinality() == 0 {
			logrus.Infof("100%% coverage for %s", payload.FileName)
			continue
		}
		indices := uncovered.ToSlice()
		sort.Ints(indices)

		report := model.FileReport{Payload: payload, Handler: HandlerUncovered}
		for _, i := range indices {
			report.Rows = append(report.Rows, uncoveredRow(env, payload, &payload.Transactions[i], i))
		}
		reports[payload.FileName] = &report
	}
	return reports
}

func uncoveredRow(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) model.ReportRow {
	chain := payload.ChainName()
	if chain == "" {
		chain = utils.SentinelNoChain
	}

	fxName := tx.MethodName()
	if fxName == "" {
		fxName = utils.SentinelNoMethod
		if tx.Data != nil && len(*tx.Data) >= 10 {
			byteSign := (*tx.Data)[:10]
			sign, err := env.Selectors.TextSignature(byteSign)
			if err != nil {
				logrus.Warnf("resolve selector %s is err: %v", byteSign, err)
			} else if sign != "" {
				fxName = sign
			}
		}
	}

	toName := env.Book.NameOf(chain, tx.To)
	if toName == "" {
		toName = utils.SentinelNotFound
	}

	// Gas token value, always 18 decimals.
	valueString := utils.SentinelNA
	if tx.Value != "" {
		amount, err := decimal.NewFromString(tx.Value)
		switch {
		case err != nil:
			valueString = tx.Value
		case amount.IsZero():
			valueString = "0"
		default:
			valueString = fmt.Sprintf("%s/1e18 = %s", tx.Value, utils.ScaleAmount(amount, 18))
		}
	}

	inputs := utils.SentinelNA
	if len(tx.ContractInputsValues) > 0 {
		inputs = prettyInputs(env, chain, tx)
	} else if tx.Data != nil && *tx.Data != "" {
		inputs = *tx.Data
	}

	row := model.ReportRow{Handler: HandlerUncovered, TxIndex: txIndex}
	row.Add("fx_name", fxName).
		Add("to", fmt.Sprintf("%s (%s)", tx.To, toName)).
		Add("chain", chain).
		Add("value", valueString).
		Add("inputs", inputs).
		Add("bip_number", payload.BIPNumber(tx))
	return row
}

// prettyInputs renders the decoded input map with address labels attached and
// transaction-builder lists expanded, one "key: value" line per input in key
// order.
func prettyInputs(env *Env, chain string, tx *model.Transaction) string {
	keys := make([]string, 0, len(tx.ContractInputsValues))
	for key := range tx.ContractInputsValues {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value := tx.Input(key)
		if strings.HasPrefix(strings.TrimSpace(value), "[") {
			items := utils.ParseListString(value)
			for i, item := range items {
				items[i] = prettyInputValue(env, chain, item)
			}
			value = strings.Join(items, ", ")
		} else {
			value = prettyInputValue(env, chain, value)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", key, value))
	}
	return strings.Join(lines, "\n")
}

func prettyInputValue(env *Env, chain, value string) string {
	if !common.IsHexAddress(value) {
		return value
	}
	name := env.Book.NameOf(chain, value)
	if name == "" {
		name = utils.SentinelNotFound
	}
	return fmt.Sprintf("%s (%s)", utils.ChecksumAddress(value), name)
}
