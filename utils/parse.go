package utils

import (
	"regexp"
	"strings"
)

var bipPattern = regexp.MustCompile(`BIP-?(\d+)`)

// ParseListString converts a transaction-builder list literal, e.g.
// "[0xabc, 0xdef]", into its elements. A bare scalar becomes a single-element
// list; an empty string becomes nil.
func ParseListString(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, " \"'")
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

// ExtractBIPNumber pulls a BIP label out of free text, usually a payload file
// name or description. Returns "N/A" when no BIP reference is present.
func ExtractBIPNumber(text string) string {
	match := bipPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return SentinelNA
	}
	return "BIP-" + match[1]
}
