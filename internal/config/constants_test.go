package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestConstants(t *testing.T) {
	if MinSubmissionLength <= 0 {
		t.Fatalf("MinSubmissionLength must be positive")
	}
	if MinMood >= MaxMood {
		t.Fatalf("mood scale must be increasing")
	}
	if DefaultDBTimeout <= 0 {
		t.Fatalf("DefaultDBTimeout must be positive")
	}
	if AppName == "" || DBFileName == "" {
		t.Fatalf("AppName and DBFileName should not be empty")
	}
}

func TestFromViperDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg, err := FromViper(viper.New())
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.DSN == "" {
		t.Fatalf("expected sqlite dsn to default into the data dir")
	}
	if cfg.Pairing.Exclusion != ExclusionOpen {
		t.Fatalf("exclusion = %q, want %q", cfg.Pairing.Exclusion, ExclusionOpen)
	}
	if cfg.Submission.MinLength != MinSubmissionLength {
		t.Fatalf("min length = %d", cfg.Submission.MinLength)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestFromViperEnvOverrides(t *testing.T) {
	t.Setenv("COHORT_DATABASE_DRIVER", "postgres")
	t.Setenv("COHORT_DATABASE_DSN", "postgres://localhost/cohort?sslmode=disable")
	t.Setenv("COHORT_PAIRING_EXCLUSION", "Recent")
	t.Setenv("COHORT_PAIRING_RECENT_SPRINTS", "2")
	t.Setenv("COHORT_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")
	cfg, err := FromViper(viper.New())
	if err != nil {
		t.Fatalf("FromViper failed: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Pairing.Exclusion != ExclusionRecent || cfg.Pairing.RecentSprints != 2 {
		t.Fatalf("unexpected pairing config %+v", cfg.Pairing)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("cors origins = %v", cfg.Server.CORSOrigins)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:        EnvDevelopment,
			Database:   DatabaseConfig{Driver: DriverSQLite, DSN: "x.db", Timeout: DefaultDBTimeout},
			Pairing:    PairingConfig{Exclusion: ExclusionOpen},
			Submission: SubmissionConfig{MinLength: 10},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"window", func(c *Config) { c.Pairing.Exclusion = "forever" }},
		{"recent without count", func(c *Config) { c.Pairing.Exclusion = ExclusionRecent }},
		{"min length", func(c *Config) { c.Submission.MinLength = 0 }},
		{"secret in production", func(c *Config) { c.Env = "production" }},
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
