package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"testimonials/internal/auth"
	"testimonials/internal/config"
	"testimonials/internal/models"
)

func setGlobals(t *testing.T, c *config.Config) {
	t.Helper()
	prevCfg, prevYAML, prevLog := cfg, yamlCfg, log
	t.Cleanup(func() { cfg, yamlCfg, log = prevCfg, prevYAML, prevLog })

	cfg, yamlCfg, log = c, nil, zap.NewNop()
}

func TestOpenStore_MemorySeeded(t *testing.T) {
	setGlobals(t, &config.Config{Store: config.StoreMemory})

	st, database, err := openStore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, database)

	approved, err := st.ListTestimonialsByStatus(context.Background(), models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "Marie Claire", approved[0].Name)
	assert.Equal(t, "Jean Dupont", approved[1].Name)
}

func TestOpenDatabase_RequiresURL(t *testing.T) {
	setGlobals(t, &config.Config{Store: config.StorePostgres})

	_, _, err := openStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestSecretSource(t *testing.T) {
	setGlobals(t, &config.Config{AdminPassword: "s3cret", AdminSecretSource: config.SecretSourceStatic})
	assert.Equal(t, auth.StaticSecret("s3cret"), secretSource(nil))

	// Without a database the static password still applies.
	cfg.AdminSecretSource = config.SecretSourceDatabase
	src := secretSource(nil)
	ok, err := src.MatchSecret(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)
}
