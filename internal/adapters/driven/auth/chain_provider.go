package auth

import (
	"context"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure ChainTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ChainTokenProvider)(nil)

// ChainTokenProvider asks each provider in order and uses the first
// one that is authenticated.
type ChainTokenProvider struct {
	providers []driven.TokenProvider
}

// NewChainTokenProvider creates a chain. Nil providers are skipped.
func NewChainTokenProvider(providers ...driven.TokenProvider) *ChainTokenProvider {
	chain := &ChainTokenProvider{}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// GetToken returns the token of the first authenticated provider.
func (c *ChainTokenProvider) GetToken(ctx context.Context) (string, error) {
	for _, p := range c.providers {
		if p.IsAuthenticated() {
			return p.GetToken(ctx)
		}
	}
	return "", domain.ErrAuthRequired
}

// IsAuthenticated returns true if any provider is authenticated.
func (c *ChainTokenProvider) IsAuthenticated() bool {
	for _, p := range c.providers {
		if p.IsAuthenticated() {
			return true
		}
	}
	return false
}
