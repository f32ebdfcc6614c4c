package config

import (
	"github.com/rshade/rosterview/internal/logging"
)

// ToLoggingConfig converts LoggingConfig to logging.Config for use with
// the internal/logging package.
//
// The conversion applies these rules:
//   - Level, Format are copied directly
//   - If File is set, Output becomes "file" and File is passed through
//   - If File is empty, Output defaults to "stderr"
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// ForInteractive returns the logging config for the TUI. The terminal belongs
// to the UI, so logs go to the configured file or are discarded.
func (lc *LoggingConfig) ForInteractive() logging.Config {
	cfg := lc.ToLoggingConfig()
	if cfg.Output != logging.OutputFile {
		cfg.Output = logging.OutputDiscard
	}
	return cfg
}
