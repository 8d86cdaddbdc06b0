package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/cohortops/internal/util"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	Database   DatabaseConfig
	Server     ServerConfig
	Auth       AuthConfig
	Pairing    PairingConfig
	Submission SubmissionConfig
	Member     MemberConfig
	Report     ReportConfig
}

type DatabaseConfig struct {
	Driver  string
	DSN     string
	Timeout time.Duration
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type PairingConfig struct {
	Exclusion     string
	RecentSprints int
}

type SubmissionConfig struct {
	MinLength int
}

// MemberConfig is the identity the terminal dashboard acts as.
type MemberConfig struct {
	ExternalID string
	Name       string
}

type ReportConfig struct {
	Dir string
}

// Load reads .env (if present), then COHORT_* environment variables and an
// optional config.yaml, falling back to defaults for every key.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		util.LogError("no .env file loaded", err)
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(util.DataDir(AppName))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: v.GetString("env"),
		Database: DatabaseConfig{
			Driver:  v.GetString("database.driver"),
			DSN:     v.GetString("database.dsn"),
			Timeout: v.GetDuration("database.timeout"),
		},
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			CORSOrigins: splitList(v.GetString("server.cors_origins")),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		Pairing: PairingConfig{
			Exclusion:     strings.ToLower(v.GetString("pairing.exclusion")),
			RecentSprints: v.GetInt("pairing.recent_sprints"),
		},
		Submission: SubmissionConfig{
			MinLength: v.GetInt("submission.min_length"),
		},
		Member: MemberConfig{
			ExternalID: v.GetString("member.external_id"),
			Name:       v.GetString("member.name"),
		},
		Report: ReportConfig{
			Dir: v.GetString("report.dir"),
		},
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverSQLite {
		cfg.Database.DSN = filepath.Join(util.DataDir(AppName), DBFileName)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.timeout", DefaultDBTimeout)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", DefaultIssuer)
	v.SetDefault("pairing.exclusion", ExclusionOpen)
	v.SetDefault("pairing.recent_sprints", DefaultRecentSprints)
	v.SetDefault("submission.min_length", MinSubmissionLength)
	v.SetDefault("member.external_id", "")
	v.SetDefault("member.name", "")
	v.SetDefault("report.dir", util.ReportsDir(AppName))
}

// Validate rejects configurations the services cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for driver %q", c.Database.Driver)
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("database timeout must be positive")
	}
	switch c.Pairing.Exclusion {
	case ExclusionOpen, ExclusionHistory:
	case ExclusionRecent:
		if c.Pairing.RecentSprints <= 0 {
			return fmt.Errorf("pairing.recent_sprints must be positive for the %q window", ExclusionRecent)
		}
	default:
		return fmt.Errorf("unknown pairing exclusion window %q", c.Pairing.Exclusion)
	}
	if c.Submission.MinLength <= 0 {
		return fmt.Errorf("submission.min_length must be positive")
	}
	if c.Auth.JWTSecret == "" && !c.IsDevelopment() {
		return fmt.Errorf("auth.jwt_secret is required outside development")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
