package handler

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

func claimed(handler, fileName string, payload *model.Payload, indices ...int) RunResult {
	report := &model.FileReport{Payload: payload, Handler: handler}
	for _, i := range indices {
		report.Rows = append(report.Rows, model.ReportRow{Handler: handler, TxIndex: i})
	}
	return RunResult{Handler: handler, Reports: model.HandlerReport{fileName: report}}
}

func TestUncoveredIsTheSetDifference(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("1",
		transferTx(balToken, map[string]any{"dst": treasury, "wad": "1"}),
		model.Transaction{To: treasury, Value: "0", ContractMethod: &model.ContractMethod{Name: "acceptOwnership"}, ContractInputsValues: map[string]any{}},
		transferTx(balToken, map[string]any{"dst": treasury, "wad": "2"}),
	)
	prior := []RunResult{claimed(HandlerTransfer, payload.FileName, payload, 0, 2)}

	reports := Uncovered(env, []*model.Payload{payload}, prior)
	require.Len(t, reports, 1)
	rows := reports[payload.FileName].Rows
	require.Len(t, rows, 1)
	assert.Equal(t, rows[0].TxIndex, 1)
	assert.Equal(t, rows[0].Get("fx_name"), "acceptOwnership")
	assert.Equal(t, rows[0].Get("value"), "0")
}

func TestUncoveredFullCoverageProducesNoReport(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("1", transferTx(balToken, map[string]any{"dst": treasury, "wad": "1"}))
	prior := []RunResult{claimed(HandlerTransfer, payload.FileName, payload, 0)}

	reports := Uncovered(env, []*model.Payload{payload}, prior)
	require.Empty(t, reports)
}

func TestUncoveredResolvesRawCalldataSelectors(t *testing.T) {
	env := newTestEnv()
	env.Selectors.(fakeSelectors)["0xab8f0945"] = "killGauge()"
	env.book().Names[key("mainnet", someGauge)] = "gauges/80bal-20weth"

	calldata := "0xab8f0945"
	payload := payloadWith("1", model.Transaction{
		To:    someGauge,
		Value: "1000000000000000000",
		Data:  &calldata,
	})

	reports := Uncovered(env, []*model.Payload{payload}, nil)
	require.Len(t, reports, 1)
	row := reports[payload.FileName].Rows[0]
	assert.Equal(t, row.Get("fx_name"), "killGauge()")
	assert.Equal(t, row.Get("to"), someGauge+" (gauges/80bal-20weth)")
	assert.Equal(t, row.Get("value"), "1000000000000000000/1e18 = 1")
	assert.Equal(t, row.Get("inputs"), calldata)
	assert.Equal(t, row.Get("bip_number"), "BIP-100")
}

func TestUncoveredPrettifiesDecodedInputs(t *testing.T) {
	env := newTestEnv()
	env.book().Names[key("mainnet", treasury)] = "multisigs/treasury"

	payload := payloadWith("1", model.Transaction{
		To:             someGauge,
		ContractMethod: &model.ContractMethod{Name: "setAdmins"},
		ContractInputsValues: map[string]any{
			"admins": "[" + treasury + "]",
			"weight": "100",
		},
	})

	reports := Uncovered(env, []*model.Payload{payload}, nil)
	require.Len(t, reports, 1)
	row := reports[payload.FileName].Rows[0]
	assert.Equal(t, row.Get("fx_name"), "setAdmins")
	assert.Equal(t, row.Get("inputs"), "admins: "+treasury+" (multisigs/treasury)\nweight: 100")
	assert.Equal(t, row.Get("value"), utils.SentinelNA)
}

func TestRunAllAppendsTheCatchAll(t *testing.T) {
	env := newTestEnv()
	env.tokens().tokens[key("mainnet", balToken)] = &model.Token{Address: balToken, Symbol: "BAL", Decimals: 18}
	payload := payloadWith("1",
		transferTx(balToken, map[string]any{"dst": treasury, "wad": "1000000000000000000"}),
		model.Transaction{To: treasury, Value: "0", ContractMethod: &model.ContractMethod{Name: "sweep"}, ContractInputsValues: map[string]any{}},
	)

	results, err := RunAll(env, []*model.Payload{payload})
	require.NoError(t, err)
	require.Len(t, results, len(All())+1)
	assert.Equal(t, results[len(results)-1].Handler, HandlerUncovered)

	transferReports := results[2].Reports
	require.Len(t, transferReports[payload.FileName].Rows, 1)
	uncoveredReports := results[len(results)-1].Reports
	require.Len(t, uncoveredReports[payload.FileName].Rows, 1)
	assert.Equal(t, uncoveredReports[payload.FileName].Rows[0].TxIndex, 1)
}
