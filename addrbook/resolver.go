// Package addrbook maps on-chain addresses to the human-readable deployment
// names maintained in external address-book artifacts.
//
// Production code uses [Registry], which fetches and caches the per-chain
// artifacts over HTTP. Tests inject [Map], a plain fixture that resolves
// deterministically without any network access.
package addrbook

import (
	"fmt"
	"strings"

	"github.com/safeops/payloadeye/utils"
)

// Resolver answers name and address lookups against the address book.
//
// Contract: lookups return "" for unknown entries; callers substitute their
// own sentinel strings.
type Resolver interface {
	NameOf(chain, address string) string
	AddressOf(chain, name string) string
	SearchUnique(chain, substr string) (string, error)
	Extra(chain, section, key string) string
}

var _ Resolver = (*Registry)(nil)
var _ Resolver = (*Map)(nil)

// Map is a fixture resolver for tests. Keys are "chain:address" (lower case)
// for Names, "chain:name" for Addrs and "chain:section:key" for Extras.
type Map struct {
	Names  map[string]string
	Addrs  map[string]string
	Extras map[string]string
}

func (m *Map) NameOf(chain, address string) string {
	return m.Names[fmt.Sprintf("%s:%s", chain, utils.NormalizeAddress(address))]
}

func (m *Map) AddressOf(chain, name string) string {
	return m.Addrs[fmt.Sprintf("%s:%s", chain, name)]
}

func (m *Map) SearchUnique(chain, substr string) (string, error) {
	prefix := chain + ":"
	matches := []string{}
	for key := range m.Addrs {
		if strings.HasPrefix(key, prefix) && strings.Contains(key, substr) {
			matches = append(matches, key)
		}
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("%d entries match %s on %s", len(matches), substr, chain)
	}
	return m.Addrs[matches[0]], nil
}

func (m *Map) Extra(chain, section, key string) string {
	return m.Extras[fmt.Sprintf("%s:%s:%s", chain, section, key)]
}
