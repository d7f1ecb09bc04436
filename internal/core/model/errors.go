package model

import "errors"

// Error taxonomy shared across the core. Callers branch with errors.Is; the
// request layer maps these onto HTTP statuses.
var (
	// ErrNotFound: a referenced entity or edge does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict: an entity uniqueness violation, surfaced by the store at
	// commit time.
	ErrConflict = errors.New("entity already exists")

	// ErrConfiguration: invalid deployment state, e.g. an empty relation
	// vocabulary or missing backend settings.
	ErrConfiguration = errors.New("configuration error")

	// ErrUpstreamUnavailable: a generative or embedding backend could not be
	// reached. Leaf components recover from this via their fallbacks; it is
	// never fatal.
	ErrUpstreamUnavailable = errors.New("upstream backend unavailable")
)
