package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/loader"
	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/render"
	"github.com/rshade/rosterview/internal/session"
	"github.com/rshade/rosterview/internal/state"
)

type listFlags struct {
	params pagination.Params
	output string
}

func newListFlags() listFlags {
	return listFlags{params: *pagination.NewParams()}
}

func newListCmd() *cobra.Command {
	flags := newListFlags()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the roster",
		Long: `Fetch the roster and print a single page of it.

Filters combine: a record must match every filter given. Filter values are
matched exactly, as listed by 'rosterview filters'. A page past the end prints
an empty page, not an error.`,
		Example: `  rosterview list
  rosterview list --country "United States" --gender female
  rosterview list --page 3 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.params.Country, "country", "", "only records whose address country equals this value")
	cmd.Flags().StringVar(&flags.params.Gender, "gender", "", "only records with this gender")
	cmd.Flags().IntVar(&flags.params.Page, "page", pagination.DefaultPage, "1-based page number")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output format: table, json or ndjson (default from config)")

	return cmd
}

func runList(cmd *cobra.Command, flags listFlags) error {
	if err := flags.params.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	raw := flags.output
	if raw == "" {
		raw = cfg.Output.DefaultFormat
	}
	format, err := render.ParseFormat(raw)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.Dispatch(state.SetCountry{Country: flags.params.Country})
	sess.Dispatch(state.SetGender{Gender: flags.params.Gender})
	sess.Dispatch(state.SetPage{Page: flags.params.Page})

	v := sess.Snapshot()
	logger.Debug().Ctx(ctx).
		Str("operation", "list").
		Int("page", v.CurrentPage()).
		Int("total_pages", v.TotalPages()).
		Int("matching", v.Pagination.TotalItems).
		Msg("rendering page")

	if err = render.Write(cmd.OutOrStdout(), format, v); err != nil {
		return err
	}
	return failure(v)
}

// loadSession creates a session and runs its one load.
func loadSession(ctx context.Context, cfg *config.Config) (*session.Session, error) {
	sess := session.New()
	if err := sess.Load(ctx, newLoader(cfg)); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// failure returns the load error of a failed view, already rendered by the
// caller, so the process exits non-zero.
func failure(v session.View) error {
	if v.Status != state.StatusFailed {
		return nil
	}
	return &loader.LoadError{Message: v.ErrorMessage}
}
