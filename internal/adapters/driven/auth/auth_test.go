package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/apexspec-cli/internal/core/domain"
)

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider("  00Dxx!token \n")

	token, err := p.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "00Dxx!token", token)
	assert.True(t, p.IsAuthenticated())
}

func TestStaticTokenProvider_Empty(t *testing.T) {
	p := NewStaticTokenProvider(" ")

	_, err := p.GetToken(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, p.IsAuthenticated())
}

func TestEnvTokenProvider(t *testing.T) {
	t.Setenv(TokenEnvVar, "from-env")
	p := NewEnvTokenProvider("")

	token, err := p.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "from-env", token)
	assert.True(t, p.IsAuthenticated())
}

func TestEnvTokenProvider_Unset(t *testing.T) {
	t.Setenv("APEXSPEC_TEST_TOKEN", "")
	p := NewEnvTokenProvider("APEXSPEC_TEST_TOKEN")

	_, err := p.GetToken(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, p.IsAuthenticated())
}

func TestChainTokenProvider_FirstAuthenticatedWins(t *testing.T) {
	t.Setenv("APEXSPEC_TEST_TOKEN", "env-token")
	chain := NewChainTokenProvider(
		NewStaticTokenProvider(""),
		nil,
		NewEnvTokenProvider("APEXSPEC_TEST_TOKEN"),
		NewStaticTokenProvider("later"),
	)

	token, err := chain.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
	assert.True(t, chain.IsAuthenticated())
}

func TestChainTokenProvider_NoneAuthenticated(t *testing.T) {
	chain := NewChainTokenProvider(NewStaticTokenProvider(""))

	_, err := chain.GetToken(context.Background())

	assert.ErrorIs(t, err, domain.ErrAuthRequired)
	assert.False(t, chain.IsAuthenticated())
}
