package handler

import (
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/model"
)

const (
	authorizer = "0xA331D84eC860Bf466b4CdCcFb4aC09a1B43F3aE6"
	relayer    = "0xfeA793Aa415061C483D2390414275AD314B3F621"
)

func roleTx(method string, inputs map[string]any) model.Transaction {
	return model.Transaction{
		To:                   authorizer,
		ContractMethod:       &model.ContractMethod{Name: method},
		ContractInputsValues: inputs,
	}
}

func TestPermissionsReportsGrantRoles(t *testing.T) {
	env := newTestEnv()
	env.book().Names[key("mainnet", authorizer)] = "20210418-authorizer/Authorizer"
	env.book().Names[key("mainnet", relayer)] = "20231031-batch-relayer-v6/BalancerRelayer"
	env.perms()["mainnet:0xaaa"] = []string{"ComposableStablePool/startAmplificationParameterUpdate"}
	env.perms()["mainnet:0xbbb"] = []string{"ComposableStablePool/stopAmplificationParameterUpdate"}

	payload := payloadWith("1", roleTx("grantRoles", map[string]any{
		"roles":   "[0xaaa, 0xbbb]",
		"account": relayer,
	}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, row.Get("function"), "Authorizer/grantRoles")
	assert.Equal(t, row.Get("chain"), "mainnet")
	assert.Equal(t, row.Get("caller_name"), "20231031-batch-relayer-v6/BalancerRelayer")
	assert.Equal(t, row.Get("caller_address"), relayer)
	assert.Equal(t, row.Get("fx_paths"),
		"ComposableStablePool/startAmplificationParameterUpdate\nComposableStablePool/stopAmplificationParameterUpdate")
	assert.Equal(t, row.Get("action_ids"), "0xaaa\n0xbbb")
}

func TestPermissionsSingleRole(t *testing.T) {
	env := newTestEnv()
	env.perms()["mainnet:0xccc"] = []string{"Vault/setRelayerApproval"}

	payload := payloadWith("1", roleTx("revokeRole", map[string]any{
		"role":    "0xccc",
		"account": relayer,
	}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, row.Get("function"), "!!NOT-FOUND??/revokeRole")
	assert.Equal(t, row.Get("fx_paths"), "Vault/setRelayerApproval")
	assert.Equal(t, row.Get("action_ids"), "0xccc")
}

func TestPermissionsUnknownActionIDStopsTheRun(t *testing.T) {
	env := newTestEnv()
	env.perms()["mainnet:0xaaa"] = []string{"ComposableStablePool/startAmplificationParameterUpdate"}

	payload := payloadWith("1", roleTx("grantRole", map[string]any{
		"role":    "0xdeadbeef00000000000000000000000000000000000000000000000000000000",
		"account": relayer,
	}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.Error(t, err)
	require.Nil(t, row)
	require.Contains(t, err.Error(), "0xdeadbeef")

	// One unresolvable id in a list fails the whole transaction too.
	payload = payloadWith("1", roleTx("grantRoles", map[string]any{
		"roles":   "[0xaaa, 0xbbb]",
		"account": relayer,
	}))
	row, err = Permissions(env, payload, &payload.Transactions[0], 0)
	require.Error(t, err)
	require.Nil(t, row)
	require.Contains(t, err.Error(), "0xbbb")
}

func TestPermissionsIgnoresNonRoleMethods(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("1", roleTx("setAuthorizer", map[string]any{"account": relayer}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestPermissionsUnknownChainYieldsNoRow(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("424242", roleTx("grantRole", map[string]any{"role": "0xccc"}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestPermissionsWithoutRolesYieldsNoRow(t *testing.T) {
	env := newTestEnv()
	payload := payloadWith("1", roleTx("grantRole", map[string]any{"account": relayer}))
	row, err := Permissions(env, payload, &payload.Transactions[0], 0)
	require.NoError(t, err)
	require.Nil(t, row)
}
