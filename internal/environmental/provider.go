package environmental

import "context"

// Provider abstracts an environmental data source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, at Coordinates) (Reading, error)
}
