package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fitness-journal/internal/config"
	"fitness-journal/internal/domain"
	"fitness-journal/internal/repository/sqlstore"
)

const statsTimeout = 30 * time.Second

type statsOptions struct {
	email  string
	asJSON bool
}

func newStatsCommand(root *RootCommand) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a user's workout stats",
		Long:  "Print weekly sessions, durations and the current streak for the user with the given email.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), statsTimeout)
			defer cancel()
			return NewErrorHandler().Handle("load stats", runStats(ctx, root.config, opts, cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "Email of the user (required)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the stats as JSON")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runStats(ctx context.Context, cfg *config.Config, opts *statsOptions, out io.Writer) error {
	db, err := config.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := sqlstore.NewUserRepository(db).GetByEmail(ctx, domain.NormalizeEmail(opts.email))
	if err != nil {
		if NewErrorHandler().IsNotFoundError(err) {
			return fmt.Errorf("no user with email %s", domain.NormalizeEmail(opts.email))
		}
		return err
	}

	stats, err := newServiceContainer(cfg, db, nil).StatsService.GetStats(ctx, user.ID)
	if err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	return printStats(out, user, stats)
}

func printStats(out io.Writer, user *domain.User, stats *domain.Stats) error {
	fmt.Fprintf(out, "%s <%s>, joined %s\n\n", user.Name, user.Email, humanize.Time(user.CreatedAt))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Sessions this week:\t%s\n", humanize.Comma(int64(stats.ThisWeekSessions)))
	fmt.Fprintf(w, "Minutes this week:\t%s\n", humanize.Comma(int64(stats.ThisWeekDurationMinutes)))
	fmt.Fprintf(w, "Total minutes:\t%s\n", humanize.Comma(int64(stats.TotalDurationMinutes)))
	fmt.Fprintf(w, "Current streak:\t%s\n", pluralDays(stats.StreakDays))
	return w.Flush()
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}
