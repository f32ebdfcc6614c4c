package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/render"
	"github.com/rshade/rosterview/internal/session"
	"github.com/rshade/rosterview/internal/state"
)

// FilterOptions lists the values accepted by --country and --gender.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Genders   []string `json:"genders"`
}

func newFiltersCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the distinct countries and genders in the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)

			raw := output
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

			v := sess.Snapshot()
			if err = writeFilters(cmd.OutOrStdout(), format, v); err != nil {
				return err
			}
			return failure(v)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or ndjson (default from config)")
	return cmd
}

func writeFilters(w io.Writer, format render.Format, v session.View) error {
	opts := FilterOptions{Countries: v.Countries, Genders: v.Genders}
	if opts.Countries == nil {
		opts.Countries = []string{}
	}
	if opts.Genders == nil {
		opts.Genders = []string{}
	}

	switch format {
	case render.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(opts)
	case render.FormatNDJSON:
		return json.NewEncoder(w).Encode(opts)
	}

	if v.Status == state.StatusFailed {
		_, err := fmt.Fprintf(w, "Error: %s\n", v.ErrorMessage)
		return err
	}
	if err := writeOptionList(w, "Countries", opts.Countries); err != nil {
		return err
	}
	return writeOptionList(w, "Genders", opts.Genders)
}

func writeOptionList(w io.Writer, title string, values []string) error {
	if _, err := fmt.Fprintf(w, "%s (%d):\n", title, len(values)); err != nil {
		return fmt.Errorf("writing %s: %w", title, err)
	}
	for _, value := range values {
		if _, err := fmt.Fprintf(w, "  %s\n", value); err != nil {
			return fmt.Errorf("writing %s: %w", title, err)
		}
	}
	return nil
}
