package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/server"
	"github.com/rshade/rosterview/internal/state"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roster over a read-only HTTP API",
		Long: `Load the roster once and serve it until interrupted.

Endpoints:
  GET /api/view?country=&gender=&page=&format=   one page as JSON (or ndjson, table)
  GET /api/filters                               distinct countries and genders
  GET /api/status                                load status
  GET /healthz                                   liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := configFromContext(ctx)
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			sess, err := loadSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			st := sess.State()
			if st.Status == state.StatusFailed {
				logger.Warn().Ctx(ctx).
					Str("operation", "serve").
					Str("error", st.ErrorMessage).
					Msg("collection failed to load; serving the failure")
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Serving %d records on %s\n", len(st.Records), cfg.Server.Addr)

			return server.New(sess, baseLogger).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
