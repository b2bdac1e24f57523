package addrbook

import (
	"fmt"
	"sort"
	"sync"

	"github.com/safeops/payloadeye/config"
)

// PermissionsSource resolves authorizer action ids to the function paths they
// authorize.
type PermissionsSource interface {
	PathsByActionID(chain, actionID string) ([]string, error)
}

// Permissions loads the per-chain permissions artifact, a map of function
// path to action id, and answers reverse lookups. One action id usually
// covers the same function across several deployments.
type Permissions struct {
	mu      sync.Mutex
	byChain map[string]map[string][]string
}

var _ PermissionsSource = (*Permissions)(nil)

func NewPermissions() *Permissions {
	return &Permissions{byChain: map[string]map[string][]string{}}
}

func (p *Permissions) load(chain string) (map[string][]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if paths, ok := p.byChain[chain]; ok {
		return paths, nil
	}

	artifact := map[string]string{}
	url := fmt.Sprintf(config.Conf.AddressBook.PermissionsURL, chain)
	if err := fetchJSON(url, &artifact); err != nil {
		return nil, err
	}

	byActionID := map[string][]string{}
	for path, actionID := range artifact {
		byActionID[actionID] = append(byActionID[actionID], path)
	}
	for _, paths := range byActionID {
		sort.Strings(paths)
	}
	p.byChain[chain] = byActionID
	return byActionID, nil
}

func (p *Permissions) PathsByActionID(chain, actionID string) ([]string, error) {
	byActionID, err := p.load(chain)
	if err != nil {
		return nil, err
	}
	return byActionID[actionID], nil
}

// PermissionsMap is a fixture source for tests, keyed "chain:actionID".
type PermissionsMap map[string][]string

func (m PermissionsMap) PathsByActionID(chain, actionID string) ([]string, error) {
	return m[fmt.Sprintf("%s:%s", chain, actionID)], nil
}
