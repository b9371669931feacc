package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"teamcomp/adapters/api"
	"teamcomp/adapters/excel"
	"teamcomp/adapters/text"
	"teamcomp/app"
	"teamcomp/domain/overlay"
	"teamcomp/internal"
	"teamcomp/internal/config"
	"teamcomp/internal/errors"
)

type globalFlags struct {
	apiBase  string
	timeout  time.Duration
	logLevel string
}

func main() {
	_ = godotenv.Load()

	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "teamcomp-cli",
		Short: "Print or export Team GO Rocket counter tables from the data API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.apiBase = strings.TrimRight(flags.apiBase, "/")
			return config.ValidateBaseURL(flags.apiBase)
		},
		SilenceUsage: true,
	}

	defaultBase := config.DefaultAPIBaseURL
	if env := os.Getenv("API_BASE_URL"); env != "" {
		defaultBase = env
	}
	rootCmd.PersistentFlags().StringVar(&flags.apiBase, "api-base", defaultBase, "Data API base URL (env API_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 10*time.Second, "Timeout for one page load")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "WARN", "Log level: ERROR|WARN|INFO|DEBUG|TRACE")

	rootCmd.AddCommand(
		newPagesCmd(),
		newShowCmd(flags),
		newExportCmd(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the available pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range app.DefaultPages() {
				hidden := ""
				if p.Hidden {
					hidden = " (hidden)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-10s /api/%s%s\n", p.Slug, p.Mode, p.Endpoint, hidden)
			}
			return nil
		},
	}
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [page]",
		Short: "Print a page's counter tables",
		Long: `Load one page from the data API and print its tables.

Example: teamcomp-cli show giovanni --api-base http://localhost:5000/api`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			return text.RenderPage(cmd.OutOrStdout(), page)
		},
	}
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [page]",
		Short: "Export a page's counter tables to an xlsx workbook",
		Long: `Load one page and write one worksheet per table.

Example: teamcomp-cli export giovanni --out giovanni.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := loadPage(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = page.Config.Slug + ".xlsx"
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.Wrapf(err, "failed to create %s", out)
			}
			defer f.Close()

			if err := excel.Export(f, page); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tables to %s\n", len(page.Tables), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <page>.xlsx)")
	return cmd
}

// loadPage runs one page controller load to completion
func loadPage(ctx context.Context, flags *globalFlags, slug string) (app.Page, error) {
	cfg, ok := app.FindPage(app.DefaultPages(), slug)
	if !ok {
		return app.Page{}, errors.NotFound("page " + slug)
	}

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(flags.logLevel))
	client := api.NewClient(api.Config{BaseURL: flags.apiBase, Timeout: flags.timeout}, logger)
	resolver := overlay.NewResolver(client, overlay.DefaultConcurrency, logger)

	controller := app.NewPageController(cfg, client, resolver, app.ControllerOptions{
		Timeout: flags.timeout,
		Logger:  logger,
	})

	page := controller.Load(ctx)
	if page.State == app.StateError {
		return page, errors.ExternalServiceError("data api", fmt.Errorf("%s", page.Error))
	}
	return page, nil
}
