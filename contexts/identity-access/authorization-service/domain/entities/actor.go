package entities

// Actor is the identity evaluated against policy.
type Actor struct {
	ID       string
	Username string
}

// Resource is the target of a gated operation.
type Resource struct {
	Type    string
	ID      string
	OwnerID string
}
