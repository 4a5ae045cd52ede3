package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "cascade", cfg.OperatorDeletePolicy)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "none", cfg.Media.Driver)
	assert.Equal(t, "15 2 * * *", cfg.Reaper.Cron)
	assert.Equal(t, "@hourly", cfg.BlacklistCleanupCron)
	assert.NoError(t, cfg.RequireServe())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("OPERATOR_DELETE_POLICY", " Detach ")
	t.Setenv("MEDIA_DRIVER", "S3")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("DB_MAX_OPEN", "5")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "detach", cfg.OperatorDeletePolicy)
	assert.Equal(t, "s3", cfg.Media.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 5, cfg.Database.MaxOpen)
}

func TestParseRejectsUnknownDeletePolicy(t *testing.T) {
	t.Setenv("OPERATOR_DELETE_POLICY", "anonymize")

	_, err := Parse()
	assert.Error(t, err)
}

func TestRequireServeWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Error(t, cfg.RequireServe())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "h", Port: "5432", Name: "clinic", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/clinic?sslmode=disable&application_name=fisiocatania", d.DSN())

	d.URL = "postgres://override"
	assert.Equal(t, "postgres://override", d.DSN())
}

func TestLocationFallback(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
