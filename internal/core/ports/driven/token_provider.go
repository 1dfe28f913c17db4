package driven

import "context"

// TokenProvider provides the access token for Tooling API calls.
// Tokens are acquired outside apexspec; providers only hand them out.
type TokenProvider interface {
	// GetToken returns the access token.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a token is available.
	IsAuthenticated() bool
}
