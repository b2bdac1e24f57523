package contracts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// call performs one view call and returns the first output, already typed by
// the ABI unpacker.
func call(contract *bind.BoundContract, method string) (any, error) {
	var out []any
	if err := contract.Call(nil, &out, method); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no data", method)
	}
	return out[0], nil
}

func callString(contract *bind.BoundContract, method string) (string, error) {
	out, err := call(contract, method)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", method, out)
	}
	return s, nil
}

func callAddress(contract *bind.BoundContract, method string) (string, error) {
	out, err := call(contract, method)
	if err != nil {
		return "", err
	}
	addr, ok := out.(common.Address)
	if !ok {
		return "", fmt.Errorf("%s: expected address, got %T", method, out)
	}
	return addr.Hex(), nil
}

func callBigInt(contract *bind.BoundContract, method string) (*big.Int, error) {
	out, err := call(contract, method)
	if err != nil {
		return nil, err
	}
	n, ok := out.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s: expected uint256, got %T", method, out)
	}
	return n, nil
}

type erc20Caller struct {
	contract *bind.BoundContract
}

func newERC20Caller(address common.Address, backend bind.ContractCaller) *erc20Caller {
	return &erc20Caller{contract: bind.NewBoundContract(address, *erc20ABI, backend, nil, nil)}
}

func (c *erc20Caller) name() (string, error) {
	return callString(c.contract, "name")
}

func (c *erc20Caller) symbol() (string, error) {
	return callString(c.contract, "symbol")
}

func (c *erc20Caller) decimals() (uint8, error) {
	out, err := call(c.contract, "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := out.(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals: expected uint8, got %T", out)
	}
	return d, nil
}

type gaugeCaller struct {
	contract *bind.BoundContract
}

func newGaugeCaller(address common.Address, backend bind.ContractCaller) *gaugeCaller {
	return &gaugeCaller{contract: bind.NewBoundContract(address, *gaugeABI, backend, nil, nil)}
}

func (c *gaugeCaller) getRecipient() (string, error) {
	return callAddress(c.contract, "getRecipient")
}

func (c *gaugeCaller) lpToken() (string, error) {
	return callAddress(c.contract, "lp_token")
}

func (c *gaugeCaller) getRelativeWeightCap() (*big.Int, error) {
	return callBigInt(c.contract, "getRelativeWeightCap")
}

func (c *gaugeCaller) rewardReceiver() (string, error) {
	return callAddress(c.contract, "reward_receiver")
}

func (c *gaugeCaller) getVotingEscrow() (string, error) {
	return callAddress(c.contract, "getVotingEscrow")
}

func (c *gaugeCaller) token() (string, error) {
	return callAddress(c.contract, "token")
}

type poolCaller struct {
	contract *bind.BoundContract
}

func newPoolCaller(address common.Address, backend bind.ContractCaller) *poolCaller {
	return &poolCaller{contract: bind.NewBoundContract(address, *poolABI, backend, nil, nil)}
}

func (c *poolCaller) name() (string, error) {
	return callString(c.contract, "name")
}

func (c *poolCaller) symbol() (string, error) {
	return callString(c.contract, "symbol")
}

func (c *poolCaller) getPoolId() ([32]byte, error) {
	out, err := call(c.contract, "getPoolId")
	if err != nil {
		return [32]byte{}, err
	}
	id, ok := out.([32]byte)
	if !ok {
		return [32]byte{}, fmt.Errorf("getPoolId: expected bytes32, got %T", out)
	}
	return id, nil
}

func (c *poolCaller) getVault() (string, error) {
	return callAddress(c.contract, "getVault")
}

func (c *poolCaller) getSwapFeePercentage() (*big.Int, error) {
	return callBigInt(c.contract, "getSwapFeePercentage")
}

func (c *poolCaller) getAmplificationParameter() (value, precision *big.Int, err error) {
	var out []any
	if err = c.contract.Call(nil, &out, "getAmplificationParameter"); err != nil {
		return nil, nil, err
	}
	if len(out) < 3 {
		return nil, nil, errors.New("getAmplificationParameter returned short data")
	}
	value, okV := out[0].(*big.Int)
	precision, okP := out[2].(*big.Int)
	if !okV || !okP {
		return nil, nil, fmt.Errorf("getAmplificationParameter: unexpected types %T %T", out[0], out[2])
	}
	return value, precision, nil
}

func (c *poolCaller) getRateProviders() ([]string, error) {
	out, err := call(c.contract, "getRateProviders")
	if err != nil {
		return nil, err
	}
	addrs, ok := out.([]common.Address)
	if !ok {
		return nil, fmt.Errorf("getRateProviders: expected address[], got %T", out)
	}
	providers := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		providers = append(providers, addr.Hex())
	}
	return providers, nil
}

type vaultCaller struct {
	contract *bind.BoundContract
}

func newVaultCaller(address common.Address, backend bind.ContractCaller) *vaultCaller {
	return &vaultCaller{contract: bind.NewBoundContract(address, *vaultABI, backend, nil, nil)}
}

func (c *vaultCaller) getPoolTokens(poolID [32]byte) ([]string, error) {
	var out []any
	if err := c.contract.Call(nil, &out, "getPoolTokens", poolID); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("getPoolTokens returned no data")
	}
	addrs, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("getPoolTokens: expected address[], got %T", out[0])
	}
	tokens := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		tokens = append(tokens, addr.Hex())
	}
	return tokens, nil
}

type injectorCaller struct {
	contract *bind.BoundContract
}

func newInjectorCaller(address common.Address, backend bind.ContractCaller) *injectorCaller {
	return &injectorCaller{contract: bind.NewBoundContract(address, *injectorABI, backend, nil, nil)}
}

func (c *injectorCaller) getInjectTokenAddress() (string, error) {
	return callAddress(c.contract, "getInjectTokenAddress")
}
