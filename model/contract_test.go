package model

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"
)

const gaugeABIFixture = `[
	{"inputs":[],"name":"killGauge","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[],"name":"getRecipient","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

func verifiedInfo(t *testing.T) *ContractInfo {
	parsed, err := abi.JSON(strings.NewReader(gaugeABIFixture))
	require.NoError(t, err)
	return &ContractInfo{Name: "PolygonRootGauge", Verified: true, ABI: &parsed}
}

func TestContractInfoHasMethod(t *testing.T) {
	info := verifiedInfo(t)
	assert.Equal(t, info.HasMethod("killGauge"), true)
	assert.Equal(t, info.HasMethod("getRelativeWeightCap"), false)

	unverified := &ContractInfo{}
	assert.Equal(t, unverified.HasMethod("killGauge"), false)
}

func TestContractInfoMethodByData(t *testing.T) {
	info := verifiedInfo(t)

	// keccak256("killGauge()")[:4]
	method, err := info.MethodByData("0xab8f0945")
	require.NoError(t, err)
	assert.Equal(t, method.Sig, "killGauge()")

	_, err = info.MethodByData("0xdeadbeef")
	require.Error(t, err)
	_, err = info.MethodByData("0xab")
	require.Error(t, err)

	unverified := &ContractInfo{Address: "0x0"}
	_, err = unverified.MethodByData("0xab8f0945")
	require.Error(t, err)
}
