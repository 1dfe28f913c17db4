package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
	"github.com/custodia-labs/apexspec-cli/internal/core/ports/driven"
)

// TokenEnvVar is the environment variable read by EnvTokenProvider.
const TokenEnvVar = "SF_ACCESS_TOKEN"

// Ensure EnvTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*EnvTokenProvider)(nil)

// EnvTokenProvider reads the token from an environment variable on every call.
type EnvTokenProvider struct {
	name string
}

// NewEnvTokenProvider creates a provider reading name, or TokenEnvVar if name is empty.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	if name == "" {
		name = TokenEnvVar
	}
	return &EnvTokenProvider{name: name}
}

// GetToken returns the variable's value.
func (p *EnvTokenProvider) GetToken(_ context.Context) (string, error) {
	token := strings.TrimSpace(os.Getenv(p.name))
	if token == "" {
		return "", domain.ErrAuthRequired
	}
	return token, nil
}

// IsAuthenticated returns true if the variable is set and not blank.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	return strings.TrimSpace(os.Getenv(p.name)) != ""
}
