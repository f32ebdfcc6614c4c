package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/logging"
)

// Exit codes returned by ExitCode.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitLoadFailed = 2
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations; baseLogger is the
// same logger without the cli component tag, for handing to other packages.
var (
	logger     zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration
	baseLogger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration
)

type configKey struct{}

// configFromContext returns the resolved config stored by the root command.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the rosterview CLI.
// Without a subcommand it behaves like `rosterview browse`.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "rosterview",
		Short:         "Browse a remote roster of people",
		Long:          "rosterview fetches a people collection once and shows it as a filtered, paginated table.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, configKey{}, cfg))

			result := setupLogging(cmd, cfg, wantsTUI(cmd))
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logResult != nil {
				return logResult.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.rosterview/config.yaml)")
	cmd.PersistentFlags().String("endpoint", "", "collection URL (overrides config and ROSTERVIEW_ENDPOINT)")
	cmd.PersistentFlags().Duration("timeout", 0, "fetch timeout, e.g. 5s (overrides config and ROSTERVIEW_TIMEOUT)")

	cmd.AddCommand(newBrowseCmd(), newListCmd(), newServeCmd(), newFiltersCmd())
	return cmd
}

const rootCmdExample = `  # Browse interactively
  rosterview

  # Second page of people in India as JSON
  rosterview list --country India --page 2 --output json

  # Distinct filter values
  rosterview filters

  # Serve the roster over HTTP
  rosterview serve --addr :8080`

// resolveConfig loads the config with the persistent flag overrides applied.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(cmd.Context(), config.LoadOptions{
		ConfigPath: path,
		Override: func(cfg *config.Config) {
			if cmd.Flags().Changed("endpoint") {
				cfg.Source.Endpoint, _ = cmd.Flags().GetString("endpoint")
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Source.Timeout, _ = cmd.Flags().GetDuration("timeout")
			}
		},
	})
}

// newLoader builds the collection loader for cfg.
func newLoader(cfg *config.Config) *loader.Loader {
	return loader.New(loader.NewHTTPFetcher(cfg.Source.Endpoint, cfg.Source.Timeout))
}

// wantsTUI reports whether cmd will take over the terminal.
func wantsTUI(cmd *cobra.Command) bool {
	if cmd.Name() != browseCmdName && cmd != cmd.Root() {
		return false
	}
	return isTerminal(cmd.OutOrStdout())
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		return ExitLoadFailed
	}
	return ExitError
}

// IsReported reports whether err was already written to the output by the
// command that returned it.
func IsReported(err error) bool {
	var loadErr *loader.LoadError
	return errors.As(err, &loadErr)
}
