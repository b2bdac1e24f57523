package handler

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/model"
)

const (
	auraBriber     = "0x642c59937a62Cf7Dc92f70fd381341c53Abf8Cb3"
	balancerBriber = "0x7Cdf753b45AB0729bcFe33DC12401E55d28308A9"
	usdcToken      = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	proposalHash   = "0x60665f40403b952593e087ffc6e4efd9caef0987a52f9c6ede767ec8c210724e"
)

func bribeEnv() *Env {
	env := newTestEnv()
	env.book().Extras["mainnet:hidden_hand2:aura_briber"] = auraBriber
	env.book().Extras["mainnet:hidden_hand2:balancer_briber"] = balancerBriber
	env.tokens().tokens[key("mainnet", usdcToken)] = &model.Token{Address: usdcToken, Symbol: "USDC", Decimals: 6}
	env.proposals().markets[MarketAura] = map[string]model.HiddenHandProposal{
		proposalHash: {ProposalHash: proposalHash, Title: "50/50 BAL/WETH", PoolID: "0xdeadbeef"},
	}
	env.proposals().markets[MarketBalancer] = map[string]model.HiddenHandProposal{}
	return env
}

func depositBribeTx(to string, inputs map[string]any) model.Transaction {
	return model.Transaction{
		To:                   to,
		ContractMethod:       &model.ContractMethod{Name: "depositBribe"},
		ContractInputsValues: inputs,
	}
}

func TestHiddenHandBribeReportsDeposit(t *testing.T) {
	env := bribeEnv()
	payload := payloadWith("1", depositBribeTx(auraBriber, map[string]any{
		"_proposal": proposalHash,
		"_token":    usdcToken,
		"_amount":   "7500000000",
		"_periods":  "2",
	}))
	row, err := HiddenHandBribe(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, row.Get("function"), "depositBribe")
	assert.Equal(t, row.Get("chain"), "mainnet")
	assert.Equal(t, row.Get("title_and_poolId"), "50/50 BAL/WETH \n0xdeadbeef")
	assert.Equal(t, row.Get("incentive_paid"), "USDC 7500(7500000000)")
	assert.Equal(t, row.Get("market_and_prophash"), "aura \n"+proposalHash)
	assert.Equal(t, row.Get("periods"), "2")
}

func TestHiddenHandBribeUnknownProposalYieldsErrorRow(t *testing.T) {
	env := bribeEnv()
	payload := payloadWith("1", depositBribeTx(balancerBriber, map[string]any{
		"_proposal": "0x1111111111111111111111111111111111111111111111111111111111111111",
		"_token":    usdcToken,
		"_amount":   "100",
	}))
	row, err := HiddenHandBribe(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, row.Get("error"),
		"Can not find proposal 0x1111111111111111111111111111111111111111111111111111111111111111 on the balancer incentive market.")
}

func TestHiddenHandBribeUnknownMarketYieldsNoRow(t *testing.T) {
	env := bribeEnv()
	payload := payloadWith("1", depositBribeTx(usdcToken, map[string]any{
		"_proposal": proposalHash,
		"_token":    usdcToken,
		"_amount":   "100",
	}))
	row, err := HiddenHandBribe(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.Nil(t, row)
}
