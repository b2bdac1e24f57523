package handler

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/model"
)

const (
	injector   = "0x8C9e97cA359D4efa28Cab27BBe42CF96B8a17D4a"
	childGauge = "0xc7e5FE004416A96Cb2C7D6440c28aE92262f7695"
	otherGauge = "0x5b006e07dF1Fce168AE9204c05fE0Ace76713f19"
)

func recipientListTx(inputs map[string]any) model.Transaction {
	return model.Transaction{
		To:                   injector,
		ContractMethod:       &model.ContractMethod{Name: "setRecipientList"},
		ContractInputsValues: inputs,
	}
}

func TestRecipientListReportsInjectorUpdate(t *testing.T) {
	env := newTestEnv()
	env.chain().injectTokens[key("polygon", injector)] = balToken
	env.tokens().tokens[key("polygon", balToken)] = &model.Token{Address: balToken, Symbol: "BAL", Decimals: 18}
	env.book().Names[key("polygon", injector)] = "maxiKeepers/gaugeRewardsInjector"
	env.book().Names[key("polygon", childGauge)] = "gauges/50wmatic-50bal"

	payload := payloadWith("137", recipientListTx(map[string]any{
		"gaugeAddresses":   "[" + childGauge + ", " + otherGauge + "]",
		"amountsPerPeriod": "[1000000000000000000, 2000000000000000000]",
		"maxPeriods":       "[4, 4]",
	}))
	row, err := RecipientList(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, row.Get("function"), "setRecipientList")
	assert.Equal(t, row.Get("chain"), "polygon")
	assert.Equal(t, row.Get("injector"), injector+"(maxiKeepers/gaugeRewardsInjector)")
	assert.Equal(t, row.Get("symbol"), "BAL")
	assert.Equal(t, row.Get("gaugeList"), childGauge+"(gauges/50wmatic-50bal)\n"+otherGauge+"(Not Found)")
	assert.Equal(t, row.Get("amounts_per_period"), "raw: 1000000000000000000/1e18 = 1\nraw: 2000000000000000000/1e18 = 2")
	assert.Equal(t, row.Get("periods"), "4\n4")
	assert.Equal(t, row.Get("total_amount"), "raw: 3000000000000000000/1e18 = 3")
}

func TestRecipientListLengthMismatchFails(t *testing.T) {
	env := newTestEnv()
	env.chain().injectTokens[key("polygon", injector)] = balToken
	env.tokens().tokens[key("polygon", balToken)] = &model.Token{Address: balToken, Symbol: "BAL", Decimals: 18}

	payload := payloadWith("137", recipientListTx(map[string]any{
		"gaugeAddresses":   "[" + childGauge + ", " + otherGauge + "]",
		"amountsPerPeriod": "[1000000000000000000]",
		"maxPeriods":       "[4, 4]",
	}))
	_, err := RecipientList(env, payload, &payload.Transactions[0], 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "list length mismatch")
}

func TestRecipientListIgnoresOtherMethods(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("137", model.Transaction{
		To:                   injector,
		ContractMethod:       &model.ContractMethod{Name: "setKeeperAddresses"},
		ContractInputsValues: map[string]any{"keepers": "[0xabc]"},
	})
	row, err := RecipientList(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.Nil(t, row)
}
