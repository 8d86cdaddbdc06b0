package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/httpapi"
	"github.com/akyairhashvil/cohortops/internal/models"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/util"
	"go.uber.org/zap"
)

type options struct {
	admin string
	name  string
	token bool
}

func main() {
	var opts options
	flag.StringVar(&opts.admin, "admin", "", "external id to create or promote as an admin")
	flag.StringVar(&opts.name, "name", "", "display name for -admin")
	flag.BoolVar(&opts.token, "token", false, "print a bearer token for -admin")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := util.NewLogger(cfg.Env, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, opts, log, os.Stdout); err != nil {
		log.Error("migrate failed", zap.Error(err))
		os.Exit(1)
	}
}

// run applies the schema and optionally bootstraps an admin member.
func run(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger, out io.Writer) error {
	if opts.token && opts.admin == "" {
		return fmt.Errorf("-token requires -admin")
	}
	if cfg.Database.Driver == config.DriverSQLite {
		_ = os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0o755)
	}
	db, err := database.Open(ctx, database.Options{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		Timeout: cfg.Database.Timeout,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("schema up to date", zap.String("driver", cfg.Database.Driver))

	if opts.admin == "" {
		return nil
	}
	svc := service.New(db, service.OptionsFromConfig(cfg), log)
	id := service.Identity{ExternalID: opts.admin, DisplayName: opts.name, Role: models.RoleAdmin}
	m, err := svc.Members.EnsureMember(ctx, id)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	fmt.Fprintf(out, "admin %s (#%d) ready\n", m.DisplayName, m.ID)

	if opts.token {
		id.DisplayName = m.DisplayName
		tok, err := httpapi.SignIdentity([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, id)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintln(out, tok)
	}
	return nil
}
