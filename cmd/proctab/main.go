package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"proctab/internal/config"
	"proctab/internal/export"
	"proctab/internal/proc"
	"proctab/internal/theme"
	"proctab/internal/ui"
	"proctab/internal/util/logx"
	"proctab/internal/version"
	"proctab/internal/view"
)

func main() {
	logx.SetLevelFromEnv()
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println("proctab", version.String())
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logx.Infof("starting proctab %s: %s", version.String(), cfg.String())
	if err := run(ctx, cfg); err != nil {
		logx.Errorf("proctab exited with error: %v", err)
		fmt.Fprintln(os.Stderr, "proctab:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	users := proc.NewUserCache()
	tbl, err := view.New(cfg, users)
	if err != nil {
		return err
	}
	th := theme.Resolve(cfg.ThemeOverride, cfg.Theme, theme.DefaultEnv())
	sampler := proc.NewSampler(cfg.ProcRoot)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
	if cfg.ExportFormat == "" && !cfg.Once && interactive {
		return ui.Run(ctx, sampler, tbl, th, cfg.Interval, strings.Join(cfg.Keywords, " "))
	}

	snaps, err := sampler.Sample(ctx)
	if err != nil {
		return err
	}
	tbl.Update(snaps)
	if cfg.ExportFormat != "" {
		if err := export.Write(cfg.ExportFormat, cfg.ExportOut, tbl.Columns(), tbl.Pids(), export.Options{Redact: cfg.Redact}); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logx.Infof("exported %d rows to %s", len(tbl.Pids()), cfg.ExportOut)
		return nil
	}
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return tbl.Print(view.NewOutput(os.Stdout, cfg.Color), th, width)
}
