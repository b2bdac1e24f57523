package utils

const (
	// Sentinels substituted for failed lookups so a single bad contract
	// never aborts a whole payload run.
	SentinelUnverified = "CONTRACT_UNVERIFIED"
	SentinelNotFound   = "Not Found"
	SentinelNA         = "N/A"
	SentinelNoMethod   = "!!N/A!!"
	SentinelNoChain    = "Chain_not_found"
)

const ChainKey = "chain"
