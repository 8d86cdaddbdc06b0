package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/akyairhashvil/cohortops/internal/config"
	"github.com/akyairhashvil/cohortops/internal/database"
	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/akyairhashvil/cohortops/internal/tui"
	"github.com/akyairhashvil/cohortops/internal/util"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to a file; stdout belongs to the dashboard.
	dataDir := util.DataDir(config.AppName)
	_ = os.MkdirAll(dataDir, 0o755)
	log, err := util.NewLogger(cfg.Env, filepath.Join(dataDir, config.LogFileName))
	if err != nil {
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(context.Background(), cfg, log, os.Stdout, interactive); err != nil {
		log.Error("dashboard exited", zap.Error(err))
		fmt.Printf("Alas, there's been an error: %v\n", err)
		os.Exit(1)
	}
}

// run opens the store and shows the dashboard as the configured member.
// Without a terminal it prints a plain-text summary to out instead.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer, interactive bool) error {
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

	svc := service.New(db, service.OptionsFromConfig(cfg), log)
	me, err := svc.Members.EnsureMember(ctx, localIdentity(cfg.Member))
	if err != nil {
		return fmt.Errorf("resolve member: %w", err)
	}
	log.Info("dashboard starting", zap.Int64("member_id", me.ID), zap.Bool("interactive", interactive))

	if !interactive {
		snap, err := tui.LoadSnapshot(ctx, svc, me)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, tui.RenderSummary(snap))
		return err
	}

	model := tui.NewMainModel(ctx, svc, me, tui.Options{
		ReportDir: cfg.Report.Dir,
		Timeout:   cfg.Database.Timeout,
		Log:       log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// localIdentity falls back to the OS account when no member is configured.
func localIdentity(m config.MemberConfig) service.Identity {
	ext := strings.TrimSpace(m.ExternalID)
	if ext == "" {
		ext = "local:" + osUserName()
	}
	return service.Identity{ExternalID: ext, DisplayName: strings.TrimSpace(m.Name)}
}

func osUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := strings.TrimSpace(os.Getenv("USER")); name != "" {
		return name
	}
	return "me"
}
