package bribes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/model"
)

const (
	testSafe       = "0x10A19e7eE7d7F8a52822f6817de8ea18204F2e4f"
	testToken      = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	testVault      = "0x9DDb2da7Dd76612e0df237B89AF2CF4413733212"
	testAuraBriber = "0x642c59937a62Cf7Dc92f70fd381341c53Abf8Cb3"
	testBalBriber  = "0x7Cdf753b45AB0729bcFe33DC12401E55d28308A9"

	balancerGauge = "0xb21A277466e7dB6934556a1Ce12eb3F032815c8A"
	auraGauge     = "0xc7e5FE004416A96Cb2C7D6440c28aE92262f7695"

	// keccak256 of the balancer gauge's 20 address bytes.
	balancerGaugeProposal = "0x60665f40403b952593e087ffc6e4efd9caef0987a52f9c6ede767ec8c210724e"
	auraProposal          = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

type fixedTokens map[string]*model.Token

func (f fixedTokens) Token(chain, address string) (*model.Token, error) {
	token, ok := f[strings.ToLower(address)]
	if !ok {
		return nil, fmt.Errorf("no token %s on %s", address, chain)
	}
	return token, nil
}

type fixedProposals map[string]map[string]model.HiddenHandProposal

func (f fixedProposals) Proposals(market string) (map[string]model.HiddenHandProposal, error) {
	proposals, ok := f[market]
	if !ok {
		return nil, fmt.Errorf("no market %s", market)
	}
	return proposals, nil
}

type fixedVerifier struct {
	err      error
	verified []string
}

func (v *fixedVerifier) Verify(_ context.Context, label string) error {
	v.verified = append(v.verified, label)
	return v.err
}

func setupBribeConfig() {
	config.Conf.Bribes = config.BribesConfig{
		SafeAddress:    testSafe,
		TokenAddress:   testToken,
		BribeVault:     testVault,
		AuraBriber:     testAuraBriber,
		BalancerBriber: testBalBriber,
	}
}

func newTestBuilder(verifier ChoiceVerifier) *Builder {
	return &Builder{
		Book:   &addrbook.Map{},
		Tokens: fixedTokens{strings.ToLower(testToken): {Address: testToken, Symbol: "USDC", Decimals: 6}},
		Proposals: fixedProposals{PlatformAura: {
			auraProposal: {ProposalHash: auraProposal, Title: "a-51 50/50 BAL/WETH", PoolID: "0xfeed"},
		}},
		Labels: func() (map[string]string, error) {
			return map[string]string{auraGauge: "a-51 50/50 BAL/WETH"}, nil
		},
		Verifier: verifier,
	}
}

func TestBuildComposesApproveAndDepositPairs(t *testing.T) {
	setupBribeConfig()
	builder := newTestBuilder(nil)
	alloc := &Allocation{
		Balancer: []Bribe{{Gauge: balancerGauge, Amount: decimal.RequireFromString("1500.5")}},
		Aura:     []Bribe{{Gauge: auraGauge, Amount: decimal.RequireFromString("250")}},
	}
	payload, summary, err := builder.Build(context.Background(), alloc, Options{})
	require.NoError(t, err)
	require.Len(t, payload.Transactions, 4)
	require.Len(t, summary.Rows, 2)

	approve := payload.Transactions[0]
	assert.Equal(t, approve.To, testToken)
	assert.Equal(t, approve.ContractMethod.Name, "approve")
	assert.Equal(t, approve.Input("spender"), testVault)
	assert.Equal(t, approve.Input("amount"), "1500500000")
	require.True(t, strings.HasPrefix(*approve.Data, "0x095ea7b3"))

	deposit := payload.Transactions[1]
	assert.Equal(t, deposit.To, testBalBriber)
	assert.Equal(t, deposit.ContractMethod.Name, "depositBribe")
	assert.Equal(t, deposit.Input("_proposal"), balancerGaugeProposal)
	assert.Equal(t, deposit.Input("_amount"), "1500500000")
	assert.Equal(t, deposit.Input("_periods"), "1")
	require.True(t, strings.HasPrefix(*deposit.Data, "0x99702270"))

	auraDeposit := payload.Transactions[3]
	assert.Equal(t, auraDeposit.To, testAuraBriber)
	assert.Equal(t, auraDeposit.Input("_proposal"), auraProposal)
	assert.Equal(t, auraDeposit.Input("_amount"), "250000000")

	assert.Equal(t, summary.Rows[0].Get("platform"), PlatformBalancer)
	assert.Equal(t, summary.Rows[1].Get("platform"), PlatformAura)
	assert.Equal(t, summary.Rows[1].Get("gauge"), auraGauge+" (a-51 50/50 BAL/WETH)")
}

func TestBuildOutputRoundTripsThroughTheDecoder(t *testing.T) {
	setupBribeConfig()
	builder := newTestBuilder(nil)
	alloc := &Allocation{Balancer: []Bribe{{Gauge: balancerGauge, Amount: decimal.RequireFromString("10")}}}
	payload, _, err := builder.Build(context.Background(), alloc, Options{})
	require.NoError(t, err)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	decoded, err := model.DecodePayload(data, "bribe_payload.json")
	require.NoError(t, err)
	require.Len(t, decoded.Transactions, 2)
	assert.Equal(t, decoded.ChainID, "1")
	assert.Equal(t, decoded.Meta.CreatedFromSafeAddress, testSafe)
	assert.Equal(t, decoded.Transactions[1].MethodName(), "depositBribe")
}

func TestBuildVerifiesChoicesWhenAsked(t *testing.T) {
	setupBribeConfig()
	verifier := &fixedVerifier{}
	builder := newTestBuilder(verifier)
	alloc := &Allocation{Aura: []Bribe{{Gauge: auraGauge, Amount: decimal.RequireFromString("5")}}}

	_, _, err := builder.Build(context.Background(), alloc, Options{VerifyChoice: true})
	require.NoError(t, err)
	require.Equal(t, []string{"a-51 50/50 BAL/WETH"}, verifier.verified)

	verifier.err = fmt.Errorf("choice not in the gauge vote")
	_, _, err = builder.Build(context.Background(), alloc, Options{VerifyChoice: true})
	require.Error(t, err)
}

func TestBuildRejectsEmptyAllocations(t *testing.T) {
	setupBribeConfig()
	builder := newTestBuilder(nil)
	_, _, err := builder.Build(context.Background(), &Allocation{}, Options{})
	require.Error(t, err)
}

func TestBuildRejectsDustAmounts(t *testing.T) {
	setupBribeConfig()
	builder := newTestBuilder(nil)
	alloc := &Allocation{Balancer: []Bribe{{Gauge: balancerGauge, Amount: decimal.RequireFromString("0.0000001")}}}
	_, _, err := builder.Build(context.Background(), alloc, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "scales to nothing")
}
