package auth

import (
	"context"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// Ensure StaticTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// StaticTokenProvider hands out a token fixed at construction.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for token. Surrounding
// whitespace is dropped.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the token, or domain.ErrAuthRequired when it is empty.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

// IsAuthenticated returns true if the token is not empty.
func (p *StaticTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}
