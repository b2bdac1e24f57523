package utils

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func ComposeTableName(schema string, tableName string) string {
	if schema != "" {
		return fmt.Sprintf("%s.%s", schema, tableName)
	}
	return tableName
}

// ChecksumAddress renders an address in EIP-55 mixed case for display.
func ChecksumAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

// NormalizeAddress lower-cases an address for map keys and comparisons.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
