package metadata

import (
	"context"

	"dbc-launchpad/internal/domain"
)

// Published is the result of pinning a token's metadata.
type Published struct {
	Name     string // token display name
	Symbol   string // token ticker
	URI      string // gateway URI of the pinned metadata document
	ImageURI string // gateway URI of the pinned image
}

// Publisher pins a token's image and metadata document to content-addressed
// storage. Publish must complete before any transaction is built: the URI is
// embedded in the pool-creation instruction payload, so a failure here is
// fatal to the whole creation request.
type Publisher interface {
	Publish(ctx context.Context, token *domain.TokenDescriptor) (*Published, error)
}
