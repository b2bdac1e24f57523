package handler

import (
	"github.com/shopspring/decimal"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/model"
)

// ChainReader performs the on-chain view calls handlers need. The production
// implementation lives in contracts.Reader; tests supply fakes.
type ChainReader interface {
	GaugeRecipient(chain, gauge string) (string, error)
	RewardReceiver(chain, address string) (string, error)
	LPToken(chain, address string) (string, error)
	RelativeWeightCap(chain, gauge string) (decimal.Decimal, error)
	VotingEscrow(chain, recipient string) (string, error)
	EscrowToken(chain, escrow string) (string, error)
	PoolName(chain, pool string) (string, error)
	PoolSymbol(chain, pool string) (string, error)
	PoolID(chain, pool string) (string, error)
	SwapFeePercentage(chain, pool string) (decimal.Decimal, error)
	AmplificationParameter(chain, pool string) (decimal.Decimal, error)
	RateProviders(chain, pool string) ([]string, error)
	PoolTokens(chain, pool string) ([]string, error)
	InjectTokenAddress(chain, injector string) (string, error)
}

// ContractInspector answers block-explorer lookups: verified state, contract
// class name and the verified ABI.
type ContractInspector interface {
	Inspect(chain, address string) (*model.ContractInfo, error)
}

// TokenSource resolves ERC-20 metadata.
type TokenSource interface {
	Token(chain, address string) (*model.Token, error)
}

// ProposalSource resolves the live Hidden Hand proposal map for an incentive
// market, keyed by lower-cased proposal hash.
type ProposalSource interface {
	Proposals(market string) (map[string]model.HiddenHandProposal, error)
}

// SelectorResolver resolves a 4-byte selector to a text signature.
type SelectorResolver interface {
	TextSignature(byteSign string) (string, error)
}

// Env bundles every external dependency the handlers consult. Wiring happens
// once in the command layer; tests build an Env from fakes.
type Env struct {
	Book      addrbook.Resolver
	Perms     addrbook.PermissionsSource
	Chain     ChainReader
	Inspector ContractInspector
	Tokens    TokenSource
	Proposals ProposalSource
	Selectors SelectorResolver
}

// Func classifies one transaction. It returns (nil, nil) when the
// transaction is not its kind, a row when it is, and an error only for hard
// failures that should stop the run.
type Func func(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error)

type Handler struct {
	Name string
	Fn   Func
}

const (
	HandlerGaugeAdd      = "gauge_add"
	HandlerGaugeKill     = "gauge_kill"
	HandlerTransfer      = "transfer"
	HandlerPermissions   = "permissions"
	HandlerBribe         = "hidden_hand_bribe"
	HandlerRecipientList = "set_recipient_list"
	HandlerUncovered     = "uncovered"
)

// All returns the classifier set in its fixed execution order. The catch-all
// is not part of it; Run appends it after every other handler has claimed its
// transactions.
func All() []Handler {
	return []Handler{
		{Name: HandlerGaugeAdd, Fn: GaugeAdd},
		{Name: HandlerGaugeKill, Fn: GaugeKill},
		{Name: HandlerTransfer, Fn: Transfer},
		{Name: HandlerPermissions, Fn: Permissions},
		{Name: HandlerBribe, Fn: HiddenHandBribe},
		{Name: HandlerRecipientList, Fn: RecipientList},
	}
}
