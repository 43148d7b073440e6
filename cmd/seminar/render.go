package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/mindengage-seminar/internal/certificate"
	"github.com/mind-engage/mindengage-seminar/internal/config"
	"github.com/mind-engage/mindengage-seminar/internal/logger"
	"github.com/mind-engage/mindengage-seminar/internal/storage"
)

type renderFlags struct {
	name string
	out  string
}

func newRenderCmd(cfgPath *string) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a certificate JPEG with the configured layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.OutOrStdout(), *cfgPath, f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Participant name printed on the certificate")
	flags.StringVar(&f.out, "out", "", "Output file (default: <name>"+certificate.FilenameSuffix+")")
	return cmd
}

func runRender(stdout io.Writer, cfgPath string, f *renderFlags) error {
	if strings.TrimSpace(f.name) == "" {
		return exitError(exitValidation, "--name is required")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return exitError(exitInput, "config: %v", err)
	}
	log, err := logger.NewStructured(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return exitError(exitInput, "logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	assets, err := storage.NewFSStore(cfg.AssetsDir)
	if err != nil {
		return exitError(exitInput, "assets: %v", err)
	}
	r, err := certificate.NewRenderer(cfg.Render, assets, log)
	if err != nil {
		return exitError(exitInput, "certificate config: %v", err)
	}
	img, err := r.Render(f.name)
	if err != nil {
		return exitError(exitRender, "render failed: %v", err)
	}

	out := f.out
	if out == "" {
		out = certificate.DownloadFilename(f.name)
	}
	if err := os.WriteFile(out, img, 0o644); err != nil {
		return exitError(exitRender, "write %s: %v", out, err)
	}
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", out, len(img))
	return nil
}
