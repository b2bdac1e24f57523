package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Static ABI fragments for the handful of read calls the report pipeline
// makes. Full ABIs come from the block explorer when a handler needs to
// decode arbitrary calldata; these cover the fixed-shape lookups.

const erc20ABIJSON = `[
	{"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

const gaugeABIJSON = `[
	{"inputs":[],"name":"getRecipient","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"lp_token","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getRelativeWeightCap","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"reward_receiver","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getVotingEscrow","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const poolABIJSON = `[
	{"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getPoolId","outputs":[{"name":"","type":"bytes32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getVault","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getSwapFeePercentage","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getAmplificationParameter","outputs":[{"name":"value","type":"uint256"},{"name":"isUpdating","type":"bool"},{"name":"precision","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getRateProviders","outputs":[{"name":"","type":"address[]"}],"stateMutability":"view","type":"function"}
]`

const vaultABIJSON = `[
	{"inputs":[{"name":"poolId","type":"bytes32"}],"name":"getPoolTokens","outputs":[{"name":"tokens","type":"address[]"},{"name":"balances","type":"uint256[]"},{"name":"lastChangeBlock","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const injectorABIJSON = `[
	{"inputs":[],"name":"getInjectTokenAddress","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

const briberABIJSON = `[
	{"inputs":[{"name":"_proposal","type":"bytes32"},{"name":"_token","type":"address"},{"name":"_amount","type":"uint256"},{"name":"_maxTokensPerVote","type":"uint256"},{"name":"_periods","type":"uint256"}],"name":"depositBribe","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var (
	erc20ABI    = mustParseABI(erc20ABIJSON)
	gaugeABI    = mustParseABI(gaugeABIJSON)
	poolABI     = mustParseABI(poolABIJSON)
	vaultABI    = mustParseABI(vaultABIJSON)
	injectorABI = mustParseABI(injectorABIJSON)
	briberABI   = mustParseABI(briberABIJSON)
)

func mustParseABI(abiJSON string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic("failed to parse ABI: " + err.Error())
	}
	return &parsed
}

// ERC20ABI exposes the minimal token ABI for callers that pack calldata
// themselves, such as the bribe payload builder.
func ERC20ABI() *abi.ABI {
	return erc20ABI
}

// BriberABI exposes the Hidden Hand market ABI for calldata packing.
func BriberABI() *abi.ABI {
	return briberABI
}
