package handler

import (
	"fmt"
	"strings"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// RecipientList reports setRecipientList calls on gauge reward injectors. The
// injected token is read from the injector contract itself so the amounts can
// be scaled with the right decimals.
func RecipientList(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	if tx.MethodName() != "setRecipientList" {
		return nil, nil
	}
	chain := payload.ChainName()
	if chain == "" {
		return nil, fmt.Errorf("unknown chain id %s", payload.ChainID)
	}

	injector := utils.ChecksumAddress(tx.To)
	tokenAddress, err := env.Chain.InjectTokenAddress(chain, tx.To)
	if err != nil {
		return nil, fmt.Errorf("read inject token of injector %s is err: %v", injector, err)
	}
	token, err := env.Tokens.Token(chain, tokenAddress)
	if err != nil {
		return nil, fmt.Errorf("get inject token %s is err: %v", tokenAddress, err)
	}

	gauges := tx.InputList("gaugeAddresses")
	amounts := tx.InputList("amountsPerPeriod")
	maxPeriods := tx.InputList("maxPeriods")
	if len(gauges) != len(amounts) || len(gauges) != len(maxPeriods) {
		return nil, fmt.Errorf("list length mismatch gauges:%d, amounts:%d, max_periods:%d",
			len(gauges), len(amounts), len(maxPeriods))
	}

	prettyGauges := make([]string, 0, len(gauges))
	for _, gauge := range gauges {
		name := env.Book.NameOf(chain, gauge)
		if name == "" {
			name = utils.SentinelNotFound
		}
		prettyGauges = append(prettyGauges, fmt.Sprintf("%s(%s)", utils.ChecksumAddress(gauge), name))
	}
	prettyAmounts := utils.PrettyAmounts(amounts, token.Decimals)
	total := utils.SumAmounts(amounts)

	injectorName := env.Book.NameOf(chain, tx.To)
	if injectorName == "" {
		injectorName = utils.SentinelNotFound
	}

	row := model.ReportRow{Handler: HandlerRecipientList, TxIndex: txIndex}
	row.Add("function", "setRecipientList").
		Add("chain", chain).
		Add("injector", fmt.Sprintf("%s(%s)", injector, injectorName)).
		Add("symbol", token.GetSymbol()).
		Add("gaugeList", strings.Join(prettyGauges, "\n")).
		Add("amounts_per_period", strings.Join(prettyAmounts, "\n")).
		Add("periods", strings.Join(maxPeriods, "\n")).
		Add("total_amount", fmt.Sprintf("raw: %s/1e%d = %s", total, token.Decimals, utils.ScaleAmount(total, token.Decimals)))
	return &row, nil
}
