package handler

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/shopspring/decimal"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// The fakes below stand in for the live services so handler tests run
// without a network. Lookups are keyed "chain:address" with the address
// lower-cased; a missing key is an error, mirroring a failed remote call.

type fakeChain struct {
	recipients      map[string]string
	rewardReceivers map[string]string
	lpTokens        map[string]string
	caps            map[string]decimal.Decimal
	escrows         map[string]string
	escrowTokens    map[string]string
	poolNames       map[string]string
	poolSymbols     map[string]string
	poolIDs         map[string]string
	fees            map[string]decimal.Decimal
	aFactors        map[string]decimal.Decimal
	rateProviders   map[string][]string
	poolTokens      map[string][]string
	injectTokens    map[string]string
}

func key(chain, address string) string {
	return fmt.Sprintf("%s:%s", chain, utils.NormalizeAddress(address))
}

func lookup[V any](m map[string]V, chain, address, what string) (V, error) {
	value, ok := m[key(chain, address)]
	if !ok {
		var zero V
		return zero, fmt.Errorf("fake chain has no %s for %s on %s", what, address, chain)
	}
	return value, nil
}

func (f *fakeChain) GaugeRecipient(chain, gauge string) (string, error) {
	return lookup(f.recipients, chain, gauge, "recipient")
}

func (f *fakeChain) RewardReceiver(chain, address string) (string, error) {
	return lookup(f.rewardReceivers, chain, address, "reward receiver")
}

func (f *fakeChain) LPToken(chain, address string) (string, error) {
	return lookup(f.lpTokens, chain, address, "lp token")
}

func (f *fakeChain) RelativeWeightCap(chain, gauge string) (decimal.Decimal, error) {
	return lookup(f.caps, chain, gauge, "weight cap")
}

func (f *fakeChain) VotingEscrow(chain, recipient string) (string, error) {
	return lookup(f.escrows, chain, recipient, "voting escrow")
}

func (f *fakeChain) EscrowToken(chain, escrow string) (string, error) {
	return lookup(f.escrowTokens, chain, escrow, "escrow token")
}

func (f *fakeChain) PoolName(chain, pool string) (string, error) {
	return lookup(f.poolNames, chain, pool, "pool name")
}

func (f *fakeChain) PoolSymbol(chain, pool string) (string, error) {
	return lookup(f.poolSymbols, chain, pool, "pool symbol")
}

func (f *fakeChain) PoolID(chain, pool string) (string, error) {
	return lookup(f.poolIDs, chain, pool, "pool id")
}

func (f *fakeChain) SwapFeePercentage(chain, pool string) (decimal.Decimal, error) {
	return lookup(f.fees, chain, pool, "swap fee")
}

func (f *fakeChain) AmplificationParameter(chain, pool string) (decimal.Decimal, error) {
	return lookup(f.aFactors, chain, pool, "a-factor")
}

func (f *fakeChain) RateProviders(chain, pool string) ([]string, error) {
	return lookup(f.rateProviders, chain, pool, "rate providers")
}

func (f *fakeChain) PoolTokens(chain, pool string) ([]string, error) {
	return lookup(f.poolTokens, chain, pool, "pool tokens")
}

func (f *fakeChain) InjectTokenAddress(chain, injector string) (string, error) {
	return lookup(f.injectTokens, chain, injector, "inject token")
}

type fakeInspector struct {
	contracts map[string]*model.ContractInfo
}

func (f *fakeInspector) Inspect(chain, address string) (*model.ContractInfo, error) {
	info, ok := f.contracts[key(chain, address)]
	if !ok {
		return nil, fmt.Errorf("fake explorer has no contract %s on %s", address, chain)
	}
	return info, nil
}

type fakeTokens struct {
	tokens map[string]*model.Token
}

func (f *fakeTokens) Token(chain, address string) (*model.Token, error) {
	return lookup(f.tokens, chain, address, "token")
}

type fakeProposals struct {
	markets map[string]map[string]model.HiddenHandProposal
}

func (f *fakeProposals) Proposals(market string) (map[string]model.HiddenHandProposal, error) {
	proposals, ok := f.markets[market]
	if !ok {
		return nil, fmt.Errorf("fake hidden hand has no market %s", market)
	}
	return proposals, nil
}

type fakeSelectors map[string]string

func (f fakeSelectors) TextSignature(byteSign string) (string, error) {
	return f[byteSign], nil
}

// verifiedContract builds the explorer answer for a verified contract with
// the given class name and ABI fragment.
func verifiedContract(name, abiJSON string) *model.ContractInfo {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	return &model.ContractInfo{Name: name, Verified: true, ABI: &parsed}
}

func unverifiedContract() *model.ContractInfo {
	return &model.ContractInfo{}
}

func newTestEnv() *Env {
	return &Env{
		Book:  &addrbook.Map{Names: map[string]string{}, Addrs: map[string]string{}, Extras: map[string]string{}},
		Perms: addrbook.PermissionsMap{},
		Chain: &fakeChain{
			recipients:      map[string]string{},
			rewardReceivers: map[string]string{},
			lpTokens:        map[string]string{},
			caps:            map[string]decimal.Decimal{},
			escrows:         map[string]string{},
			escrowTokens:    map[string]string{},
			poolNames:       map[string]string{},
			poolSymbols:     map[string]string{},
			poolIDs:         map[string]string{},
			fees:            map[string]decimal.Decimal{},
			aFactors:        map[string]decimal.Decimal{},
			rateProviders:   map[string][]string{},
			poolTokens:      map[string][]string{},
			injectTokens:    map[string]string{},
		},
		Inspector: &fakeInspector{contracts: map[string]*model.ContractInfo{}},
		Tokens:    &fakeTokens{tokens: map[string]*model.Token{}},
		Proposals: &fakeProposals{markets: map[string]map[string]model.HiddenHandProposal{}},
		Selectors: fakeSelectors{},
	}
}

func (e *Env) book() *addrbook.Map            { return e.Book.(*addrbook.Map) }
func (e *Env) chain() *fakeChain              { return e.Chain.(*fakeChain) }
func (e *Env) inspector() *fakeInspector      { return e.Inspector.(*fakeInspector) }
func (e *Env) tokens() *fakeTokens            { return e.Tokens.(*fakeTokens) }
func (e *Env) proposals() *fakeProposals      { return e.Proposals.(*fakeProposals) }
func (e *Env) perms() addrbook.PermissionsMap { return e.Perms.(addrbook.PermissionsMap) }
