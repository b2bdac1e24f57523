package datastore

const (
	TableTokens     = "tokens"
	TableSignatures = "signatures"
)

const (
	SchemaPublic = "public"
)
