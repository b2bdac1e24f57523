package client

import (
	"sync"

	"github.com/machinebox/graphql"

	"github.com/safeops/payloadeye/config"
)

type graphQLClient struct {
	client *graphql.Client
}

var gqc graphQLClient
var gqlOnce sync.Once

func (gqc *graphQLClient) initGraphQLClient() {
	gqc.client = graphql.NewClient(
		config.Conf.Snapshot.GraphQLURL,
		graphql.WithHTTPClient(HTTPClient()),
	)
}

// SnapshotClient talks to the snapshot hub GraphQL endpoint.
func SnapshotClient() *graphql.Client {
	gqlOnce.Do(func() {
		gqc.initGraphQLClient()
	})
	return gqc.client
}
