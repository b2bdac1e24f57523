package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/config"
)

type HiddenHandResponse struct {
	Error bool                 `json:"error"`
	Data  []HiddenHandProposal `json:"data"`
}

type HiddenHandProposal struct {
	ProposalHash string `json:"proposalHash"`
	Title        string `json:"title"`
	PoolID       string `json:"poolId"`
}

// GetHiddenHandProposals fetches the live proposal list for one incentive
// market (aura or balancer).
func GetHiddenHandProposals(market string) ([]HiddenHandProposal, error) {
	url := fmt.Sprintf("%s/proposal/%s", config.Conf.HiddenHand.APIURL, market)
	body, err := retry.DoWithData(func() ([]byte, error) {
		resp, err := client.HTTPClient().Get(url)
		if err != nil {
			return nil, fmt.Errorf("get proposals from %s is err: %v", url, err)
		}
		defer resp.Body.Close()
		return io.ReadAll(resp.Body)
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return nil, err
	}

	response := HiddenHandResponse{}
	if err = json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("unmarshal hidden hand response %s is err: %v", string(body), err)
	}
	if response.Error {
		return nil, fmt.Errorf("hidden hand api reports an error for market %s", market)
	}
	return response.Data, nil
}

// ProposalStore caches the per-market proposal maps for the run, keyed by
// lower-cased proposal hash.
type ProposalStore struct {
	mu    sync.Mutex
	cache map[string]map[string]HiddenHandProposal
}

func NewProposalStore() *ProposalStore {
	return &ProposalStore{cache: map[string]map[string]HiddenHandProposal{}}
}

func (ps *ProposalStore) Proposals(market string) (map[string]HiddenHandProposal, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if cached, ok := ps.cache[market]; ok {
		return cached, nil
	}
	proposals, err := GetHiddenHandProposals(market)
	if err != nil {
		return nil, err
	}
	byHash := make(map[string]HiddenHandProposal, len(proposals))
	for _, proposal := range proposals {
		byHash[strings.ToLower(proposal.ProposalHash)] = proposal
	}
	ps.cache[market] = byHash
	return byHash, nil
}
