package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Data:      DataConfig{BasePath: "/srv/bookcircle"},
		Recommend: RecommendConfig{Workers: 4, MinReviews: 1},
		RateLimit: RateLimitConfig{RequestsPerMinute: 60, Burst: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Environments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RecommendAndRateLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Recommend.Workers = 0
	assert.ErrorContains(t, cfg.Validate(), "score workers")

	cfg = validConfig()
	cfg.Recommend.MinReviews = -1
	assert.ErrorContains(t, cfg.Validate(), "min reviews")

	cfg = validConfig()
	cfg.RateLimit.Burst = 0
	assert.ErrorContains(t, cfg.Validate(), "rate limit")

	cfg = validConfig()
	cfg.Data.BasePath = ""
	assert.ErrorContains(t, cfg.Validate(), "data base path")
}

func TestLoad_DefaultsAndFlags(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load([]string{
		"-env-file", filepath.Join(dir, "missing.env"),
		"-data-path", dir,
		"-score-workers", "3",
		"-score-cache-ttl", "2m",
		"-allowed-origins", "http://a.test, http://b.test",
	})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, dir, cfg.Data.BasePath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 3, cfg.Recommend.Workers)
	assert.Equal(t, 2*time.Minute, cfg.Recommend.CacheTTL)
	assert.True(t, cfg.Recommend.CacheEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SCORE_CACHE_ENABLED", "no")

	cfg, err := Load([]string{"-env-file", "", "-data-path", dir, "-port", "9100"})
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.False(t, cfg.Recommend.CacheEnabled)
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load([]string{"-env-file", "", "-data-path", t.TempDir(), "-read-timeout", "soon"})
	assert.ErrorContains(t, err, "invalid read timeout")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("~/books", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "books"), got)

	got, err = expandPath("/a/b/../c", "")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", got)

	got, err = expandPath("rel", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("BC_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "BC_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "BC_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "BC_TEST_UNSET_KEY", "default"))
}

func TestTypedConfigValues(t *testing.T) {
	assert.True(t, getBoolConfigValue("YES", "BC_UNSET", false))
	assert.False(t, getBoolConfigValue("off", "BC_UNSET", true))
	assert.True(t, getBoolConfigValue("", "BC_UNSET", true))

	assert.Equal(t, 12, getIntConfigValue("12", "BC_UNSET", 1))
	assert.Equal(t, 1, getIntConfigValue("twelve", "BC_UNSET", 1))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nBC_ENV_A=alpha\nBC_ENV_B = \"quoted value\"\nBC_ENV_KEEP=file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("BC_ENV_KEEP", "process")
	t.Setenv("BC_ENV_A", "")
	t.Setenv("BC_ENV_B", "")

	require.NoError(t, loadEnvFile(path))

	assert.Equal(t, "alpha", os.Getenv("BC_ENV_A"))
	assert.Equal(t, "quoted value", os.Getenv("BC_ENV_B"))
	assert.Equal(t, "process", os.Getenv("BC_ENV_KEEP"))
}

func TestLoadEnvFile_Errors(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "nope.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NOT_A_PAIR\n"), 0o600))
	assert.ErrorContains(t, loadEnvFile(path), "line 1")
}
