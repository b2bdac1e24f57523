package model

import "github.com/safeops/payloadeye/utils"

// PoolInfo carries the display fields describing the pool behind a gauge.
// Tokens are pre-rendered "SYMBOL(address)" strings.
type PoolInfo struct {
	Name          string
	Symbol        string
	PoolID        string
	Address       string
	AFactor       string
	Fee           string
	Tokens        []string
	RateProviders []string
}

// UnverifiedPoolInfo is substituted when a contract on the lookup path has no
// verified source on the block explorer.
func UnverifiedPoolInfo() *PoolInfo {
	return &PoolInfo{
		Name:    utils.SentinelUnverified,
		Symbol:  utils.SentinelUnverified,
		PoolID:  utils.SentinelUnverified,
		Address: utils.SentinelUnverified,
		AFactor: utils.SentinelUnverified,
		Fee:     utils.SentinelUnverified,
	}
}

// NoEscrowPoolInfo is substituted for single recipient gauges set up without
// an escrow contract, which is normally what ties a gauge to its pool.
func NoEscrowPoolInfo() *PoolInfo {
	return &PoolInfo{
		Name:          "UNKNOWN - No escrow",
		Symbol:        utils.SentinelNA,
		PoolID:        "N/A - No Escrow",
		Address:       utils.SentinelNA,
		AFactor:       utils.SentinelNA,
		Fee:           utils.SentinelNA,
		Tokens:        []string{"UNKNOWN"},
		RateProviders: []string{"UNKNOWN"},
	}
}
