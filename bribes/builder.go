package bribes

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/status-im/keycard-go/hexutils"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/contracts"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// BuilderHandlerName tags the builder's summary rows.
const BuilderHandlerName = "bribe_builder"

const defaultBribeTokenName = "tokens/USDC"

// TokenSource resolves ERC-20 metadata for amount scaling.
type TokenSource interface {
	Token(chain, address string) (*model.Token, error)
}

// ProposalSource resolves the live Hidden Hand proposal map for a market.
type ProposalSource interface {
	Proposals(market string) (map[string]model.HiddenHandProposal, error)
}

// ChoiceVerifier checks an aura label against the live snapshot gauge vote.
type ChoiceVerifier interface {
	Verify(ctx context.Context, label string) error
}

// Builder assembles a Safe transaction-builder payload from a bribe
// allocation: one approve on the bribe vault plus one depositBribe per
// allocation row.
type Builder struct {
	Book      addrbook.Resolver
	Tokens    TokenSource
	Proposals ProposalSource
	Labels    func() (map[string]string, error)
	Verifier  ChoiceVerifier
}

// Options tune one build run. Empty values fall back to the configuration and
// the address-book extras.
type Options struct {
	SafeAddress  string
	TokenAddress string
	Periods      int64
	VerifyChoice bool
}

// Build produces the payload and a summary report of every deposit in it.
// The payload decodes back through DecodePayload, so the report command can
// describe it before signers see it.
func (b *Builder) Build(ctx context.Context, alloc *Allocation, opts Options) (*model.Payload, *model.FileReport, error) {
	if alloc == nil || (len(alloc.Balancer) == 0 && len(alloc.Aura) == 0) {
		return nil, nil, fmt.Errorf("bribe allocation is empty")
	}

	safeAddress := opts.SafeAddress
	if safeAddress == "" {
		safeAddress = config.Conf.Bribes.SafeAddress
	}
	if safeAddress == "" {
		return nil, nil, fmt.Errorf("no safe address configured for the bribe payload")
	}

	tokenAddress := opts.TokenAddress
	if tokenAddress == "" {
		tokenAddress = config.Conf.Bribes.TokenAddress
	}
	if tokenAddress == "" {
		tokenAddress = b.Book.AddressOf(utils.ChainMainnet, defaultBribeTokenName)
	}
	if tokenAddress == "" {
		return nil, nil, fmt.Errorf("no bribe token configured or in the address book")
	}
	token, err := b.Tokens.Token(utils.ChainMainnet, tokenAddress)
	if err != nil {
		return nil, nil, fmt.Errorf("get bribe token %s is err: %v", tokenAddress, err)
	}

	bribeVault, err := b.briberAddress(config.Conf.Bribes.BribeVault, "bribe_vault")
	if err != nil {
		return nil, nil, err
	}

	periods := opts.Periods
	if periods <= 0 {
		periods = 1
	}

	deposits := len(alloc.Balancer) + len(alloc.Aura)
	payload := &model.Payload{
		Version:   "1.0",
		ChainID:   strconv.FormatInt(utils.ChainIDByName(utils.ChainMainnet), 10),
		CreatedAt: time.Now().UnixMilli(),
		Meta: model.PayloadMeta{
			Name:                   "Transactions Batch",
			Description:            fmt.Sprintf("Hidden Hand bribe deposits (%d)", deposits),
			TxBuilderVersion:       "1.16.3",
			CreatedFromSafeAddress: utils.ChecksumAddress(safeAddress),
		},
		Transactions: []model.Transaction{},
	}
	summary := &model.FileReport{Payload: payload, Handler: BuilderHandlerName}

	if len(alloc.Balancer) > 0 {
		briber, err := b.briberAddress(config.Conf.Bribes.BalancerBriber, "balancer_briber")
		if err != nil {
			return nil, nil, err
		}
		for _, bribe := range alloc.Balancer {
			proposal := balancerProposal(bribe.Gauge)
			if err := appendBribe(payload, summary, PlatformBalancer, briber, bribeVault, token, bribe, proposal, "", periods); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(alloc.Aura) > 0 {
		briber, err := b.briberAddress(config.Conf.Bribes.AuraBriber, "aura_briber")
		if err != nil {
			return nil, nil, err
		}
		labels, err := b.Labels()
		if err != nil {
			return nil, nil, err
		}
		proposals, err := b.Proposals.Proposals(PlatformAura)
		if err != nil {
			return nil, nil, fmt.Errorf("get aura proposals is err: %v", err)
		}
		for _, bribe := range alloc.Aura {
			label, ok := labels[bribe.Gauge]
			if !ok {
				return nil, nil, fmt.Errorf("gauge %s has no aura snapshot label", bribe.Gauge)
			}
			if opts.VerifyChoice && b.Verifier != nil {
				if err := b.Verifier.Verify(ctx, label); err != nil {
					return nil, nil, err
				}
			}
			proposal := proposalByTitle(proposals, label)
			if proposal == "" {
				return nil, nil, fmt.Errorf("no aura proposal titled %s for gauge %s", label, bribe.Gauge)
			}
			if err := appendBribe(payload, summary, PlatformAura, briber, bribeVault, token, bribe, proposal, label, periods); err != nil {
				return nil, nil, err
			}
		}
	}
	return payload, summary, nil
}

// briberAddress prefers the configured override, falling back to the
// hidden_hand2 section of the mainnet address-book extras.
func (b *Builder) briberAddress(override, key string) (string, error) {
	if override != "" {
		return override, nil
	}
	address := b.Book.Extra(utils.ChainMainnet, "hidden_hand2", key)
	if address == "" {
		return "", fmt.Errorf("no %s address configured or in the address book extras", key)
	}
	return address, nil
}

// appendBribe attaches the approve/depositBribe pair for one allocation row
// and records its summary line.
func appendBribe(payload *model.Payload, summary *model.FileReport, market, briber, bribeVault string, token *model.Token, bribe Bribe, proposal, label string, periods int64) error {
	mantissa := bribe.Amount.Shift(int32(token.Decimals)).Truncate(0)
	if !mantissa.IsPositive() {
		return fmt.Errorf("bribe amount %s on gauge %s scales to nothing", bribe.Amount, bribe.Gauge)
	}

	approve, err := approveTx(token.Address, bribeVault, mantissa)
	if err != nil {
		return err
	}
	deposit, err := depositTx(briber, proposal, token.Address, mantissa, periods)
	if err != nil {
		return err
	}
	payload.Transactions = append(payload.Transactions, approve, deposit)

	gauge := bribe.Gauge
	if label != "" {
		gauge = fmt.Sprintf("%s (%s)", bribe.Gauge, label)
	}
	row := model.ReportRow{Handler: BuilderHandlerName, TxIndex: len(payload.Transactions) - 1}
	row.Add("platform", market).
		Add("gauge", gauge).
		Add("proposal", proposal).
		Add("amount", fmt.Sprintf("%s %s", bribe.Amount, token.GetSymbol())).
		Add("mantissa", mantissa.String()).
		Add("periods", strconv.FormatInt(periods, 10))
	summary.Rows = append(summary.Rows, row)
	return nil
}

// balancerProposal derives the Hidden Hand proposal hash for a balancer
// gauge: the keccak256 of its 20-byte address.
func balancerProposal(gauge string) string {
	return crypto.Keccak256Hash(common.HexToAddress(gauge).Bytes()).Hex()
}

func proposalByTitle(proposals map[string]model.HiddenHandProposal, title string) string {
	for _, proposal := range proposals {
		if proposal.Title == title {
			return proposal.ProposalHash
		}
	}
	return ""
}

func approveTx(tokenAddress, spender string, amount decimal.Decimal) (model.Transaction, error) {
	data, err := contracts.ERC20ABI().Pack("approve", common.HexToAddress(spender), amount.BigInt())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("pack approve is err: %v", err)
	}
	calldata := encodeCalldata(data)
	return model.Transaction{
		To:    utils.ChecksumAddress(tokenAddress),
		Value: "0",
		Data:  &calldata,
		ContractMethod: &model.ContractMethod{
			Name: "approve",
			Inputs: []model.ContractInput{
				{Name: "spender", Type: "address", InternalType: "address"},
				{Name: "amount", Type: "uint256", InternalType: "uint256"},
			},
		},
		ContractInputsValues: map[string]any{
			"spender": utils.ChecksumAddress(spender),
			"amount":  amount.String(),
		},
	}, nil
}

func depositTx(briber, proposal, tokenAddress string, amount decimal.Decimal, periods int64) (model.Transaction, error) {
	data, err := contracts.BriberABI().Pack("depositBribe",
		[32]byte(common.HexToHash(proposal)),
		common.HexToAddress(tokenAddress),
		amount.BigInt(),
		big.NewInt(0),
		big.NewInt(periods),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("pack depositBribe is err: %v", err)
	}
	calldata := encodeCalldata(data)
	return model.Transaction{
		To:    utils.ChecksumAddress(briber),
		Value: "0",
		Data:  &calldata,
		ContractMethod: &model.ContractMethod{
			Name: "depositBribe",
			Inputs: []model.ContractInput{
				{Name: "_proposal", Type: "bytes32", InternalType: "bytes32"},
				{Name: "_token", Type: "address", InternalType: "address"},
				{Name: "_amount", Type: "uint256", InternalType: "uint256"},
				{Name: "_maxTokensPerVote", Type: "uint256", InternalType: "uint256"},
				{Name: "_periods", Type: "uint256", InternalType: "uint256"},
			},
		},
		ContractInputsValues: map[string]any{
			"_proposal":         proposal,
			"_token":            utils.ChecksumAddress(tokenAddress),
			"_amount":           amount.String(),
			"_maxTokensPerVote": "0",
			"_periods":          strconv.FormatInt(periods, 10),
		},
	}, nil
}

func encodeCalldata(data []byte) string {
	return fmt.Sprintf("0x%s", strings.ToLower(hexutils.BytesToHex(data)))
}
