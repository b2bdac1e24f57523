package cmd

import (
	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/contracts"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/model"
)

// newEnv wires the handler environment against the live services: the
// address-book artifacts, the configured chain providers, the block explorer
// and the hidden hand API. Tests build their Env from fakes instead.
func newEnv() *handler.Env {
	reader := contracts.NewReader()
	return &handler.Env{
		Book:      addrbook.NewRegistry(),
		Perms:     addrbook.NewPermissions(),
		Chain:     reader,
		Inspector: model.NewContractStore(),
		Tokens:    model.NewTokenStore(reader),
		Proposals: model.NewProposalStore(),
		Selectors: model.NewSignatureStore(),
	}
}
