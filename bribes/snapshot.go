package bribes

import (
	"context"
	"fmt"

	"github.com/machinebox/graphql"

	"github.com/safeops/payloadeye/client"
	"github.com/safeops/payloadeye/config"
)

const proposalChoicesQuery = `
query ($proposal_id: String) {
  proposal(id: $proposal_id) {
    choices
  }
}`

const latestProposalQuery = `
query ($space: String) {
  proposals(first: 1, where: { space: $space, state: "all" }, orderBy: "created", orderDirection: desc) {
    id
  }
}`

// SnapshotVerifier checks bribe labels against the live gauge vote on the
// snapshot hub.
type SnapshotVerifier struct {
	Space string
}

func NewSnapshotVerifier() *SnapshotVerifier {
	return &SnapshotVerifier{Space: config.Conf.Snapshot.AuraSpace}
}

// Verify confirms label is one of the choices of the newest proposal in the
// gauge vote space. A label the vote does not carry cannot receive an aura
// bribe.
func (v *SnapshotVerifier) Verify(ctx context.Context, label string) error {
	proposalID, err := v.latestProposal(ctx)
	if err != nil {
		return err
	}
	_, err = v.choiceIndex(ctx, proposalID, label)
	return err
}

func (v *SnapshotVerifier) latestProposal(ctx context.Context) (string, error) {
	req := graphql.NewRequest(latestProposalQuery)
	req.Var("space", v.Space)
	var resp struct {
		Proposals []struct {
			ID string `json:"id"`
		} `json:"proposals"`
	}
	if err := client.SnapshotClient().Run(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("query snapshot proposals for %s is err: %v", v.Space, err)
	}
	if len(resp.Proposals) == 0 {
		return "", fmt.Errorf("no snapshot proposals in space %s", v.Space)
	}
	return resp.Proposals[0].ID, nil
}

func (v *SnapshotVerifier) choiceIndex(ctx context.Context, proposalID, label string) (int, error) {
	req := graphql.NewRequest(proposalChoicesQuery)
	req.Var("proposal_id", proposalID)
	var resp struct {
		Proposal struct {
			Choices []string `json:"choices"`
		} `json:"proposal"`
	}
	if err := client.SnapshotClient().Run(ctx, req, &resp); err != nil {
		return 0, fmt.Errorf("query snapshot proposal %s is err: %v", proposalID, err)
	}
	for i, choice := range resp.Proposal.Choices {
		if choice == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("choice %s not found in snapshot proposal %s", label, proposalID)
}
