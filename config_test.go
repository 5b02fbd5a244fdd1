package signup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SIGNUP_SIGNING_SECRET", "secret")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 200, cfg.AvatarSize)
	assert.Equal(t, "pg", cfg.AvatarRating)
	assert.Equal(t, "mm", cfg.AvatarDefault)
}

func TestLoadConfig_RequiresSigningSecret(t *testing.T) {
	t.Setenv("SIGNUP_SIGNING_SECRET", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SIGNUP_SIGNING_SECRET", "secret")
	t.Setenv("SIGNUP_STORAGE", "postgres")
	t.Setenv("SIGNUP_TOKEN_TTL", "2h")
	t.Setenv("SIGNUP_BCRYPT_COST", "10")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadConfig_RejectsUnknownStorage(t *testing.T) {
	t.Setenv("SIGNUP_SIGNING_SECRET", "secret")
	t.Setenv("SIGNUP_STORAGE", "cassandra")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_RejectsOutOfRangeCost(t *testing.T) {
	t.Setenv("SIGNUP_SIGNING_SECRET", "secret")
	t.Setenv("SIGNUP_BCRYPT_COST", "99")

	_, err := LoadConfig()

	assert.Error(t, err)
}
