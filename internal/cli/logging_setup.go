package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/logging"
)

// setupLogging configures logging from the resolved config and the --debug
// flag. When interactive, the terminal belongs to the TUI and logs go to the
// configured file or nowhere.
func setupLogging(cmd *cobra.Command, cfg *config.Config, interactive bool) logging.LogPathResult {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		if !interactive {
			loggingCfg.Format = logging.FormatConsole
			loggingCfg.File = ""
		}
	}

	lc := loggingCfg.ToLoggingConfig()
	if interactive {
		lc = loggingCfg.ForInteractive()
	}

	result := logging.NewLoggerWithPath(lc)
	baseLogger = result.Logger
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile && !interactive {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("endpoint", cfg.Source.Endpoint).
		Msg("command started")

	return result
}
