package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/safeops/payloadeye/client"
)

// Reader performs the on-chain view calls handlers need, one chain-aware
// method per lookup. All methods return an error when the chain has no
// configured provider; handlers decide whether that becomes a sentinel or a
// hard failure.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) backend(chain string) (*ethclient.Client, error) {
	evmClient := client.EvmClient(chain)
	if evmClient == nil {
		return nil, fmt.Errorf("no provider configured for chain %s", chain)
	}
	return evmClient, nil
}

// TokenMeta reads name, symbol and decimals from an ERC-20 contract.
func (r *Reader) TokenMeta(chain, address string) (name, symbol string, decimals int64, err error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", "", 0, err
	}
	token := newERC20Caller(common.HexToAddress(address), backend)
	if name, err = token.name(); err != nil {
		return "", "", 0, fmt.Errorf("get token %s name is err: %v", address, err)
	}
	if symbol, err = token.symbol(); err != nil {
		return "", "", 0, fmt.Errorf("get token %s symbol is err: %v", address, err)
	}
	d, err := token.decimals()
	if err != nil {
		return "", "", 0, fmt.Errorf("get token %s decimals is err: %v", address, err)
	}
	return name, symbol, int64(d), nil
}

func (r *Reader) GaugeRecipient(chain, gauge string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newGaugeCaller(common.HexToAddress(gauge), backend).getRecipient()
}

func (r *Reader) RewardReceiver(chain, address string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newGaugeCaller(common.HexToAddress(address), backend).rewardReceiver()
}

func (r *Reader) LPToken(chain, address string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newGaugeCaller(common.HexToAddress(address), backend).lpToken()
}

// RelativeWeightCap returns the gauge cap scaled to a percentage, 1e18 carries
// 100%.
func (r *Reader) RelativeWeightCap(chain, gauge string) (decimal.Decimal, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return decimal.Zero, err
	}
	cap, err := newGaugeCaller(common.HexToAddress(gauge), backend).getRelativeWeightCap()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(cap, 0).DivRound(decimal.NewFromInt(1e16), 20), nil
}

func (r *Reader) VotingEscrow(chain, recipient string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newGaugeCaller(common.HexToAddress(recipient), backend).getVotingEscrow()
}

func (r *Reader) EscrowToken(chain, escrow string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newGaugeCaller(common.HexToAddress(escrow), backend).token()
}

func (r *Reader) PoolName(chain, pool string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newPoolCaller(common.HexToAddress(pool), backend).name()
}

func (r *Reader) PoolSymbol(chain, pool string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newPoolCaller(common.HexToAddress(pool), backend).symbol()
}

func (r *Reader) PoolID(chain, pool string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	id, err := newPoolCaller(common.HexToAddress(pool), backend).getPoolId()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%x", id), nil
}

// SwapFeePercentage returns the pool swap fee scaled to a percentage.
func (r *Reader) SwapFeePercentage(chain, pool string) (decimal.Decimal, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return decimal.Zero, err
	}
	fee, err := newPoolCaller(common.HexToAddress(pool), backend).getSwapFeePercentage()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(fee, 0).DivRound(decimal.NewFromInt(1e16), 20), nil
}

// AmplificationParameter returns the stable pool a-factor already divided by
// its on-chain precision.
func (r *Reader) AmplificationParameter(chain, pool string) (decimal.Decimal, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return decimal.Zero, err
	}
	value, precision, err := newPoolCaller(common.HexToAddress(pool), backend).getAmplificationParameter()
	if err != nil {
		return decimal.Zero, err
	}
	if precision.Sign() == 0 {
		return decimal.Zero, fmt.Errorf("pool %s reports zero amplification precision", pool)
	}
	return decimal.NewFromBigInt(value, 0).DivRound(decimal.NewFromBigInt(precision, 0), 20), nil
}

func (r *Reader) RateProviders(chain, pool string) ([]string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return nil, err
	}
	return newPoolCaller(common.HexToAddress(pool), backend).getRateProviders()
}

// PoolTokens resolves the pool's vault registration and returns the token
// addresses backing it.
func (r *Reader) PoolTokens(chain, pool string) ([]string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return nil, err
	}
	poolCaller := newPoolCaller(common.HexToAddress(pool), backend)
	poolID, err := poolCaller.getPoolId()
	if err != nil {
		return nil, fmt.Errorf("get pool id of %s is err: %v", pool, err)
	}
	vault, err := poolCaller.getVault()
	if err != nil {
		return nil, fmt.Errorf("get vault of pool %s is err: %v", pool, err)
	}
	return newVaultCaller(common.HexToAddress(vault), backend).getPoolTokens(poolID)
}

func (r *Reader) InjectTokenAddress(chain, injector string) (string, error) {
	backend, err := r.backend(chain)
	if err != nil {
		return "", err
	}
	return newInjectorCaller(common.HexToAddress(injector), backend).getInjectTokenAddress()
}
