package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/cricket-sim-service/internal/app/simulations"
	"github.com/preston-bernstein/cricket-sim-service/internal/domain"
	"github.com/preston-bernstein/cricket-sim-service/internal/loader"
	"github.com/preston-bernstein/cricket-sim-service/internal/render"
	"github.com/preston-bernstein/cricket-sim-service/internal/storage/sqlite"
)

func newGamesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.withTimeout(cmd.Context())
			defer cancel()

			src, closeSrc, err := c.source(ctx)
			if err != nil {
				return err
			}
			defer closeSrc()

			matches, err := src.ListMatches(ctx)
			if err != nil {
				return fmt.Errorf("failed to list matches: %w", err)
			}
			return render.Matches(cmd.OutOrStdout(), matches, c.renderOptions())
		},
	}
}

func newShowCmd(c *cli) *cobra.Command {
	var summaryOnly bool
	cmd := &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show win probabilities and the score distribution for a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseMatchID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := c.withTimeout(cmd.Context())
			defer cancel()

			src, closeSrc, err := c.source(ctx)
			if err != nil {
				return err
			}
			defer closeSrc()

			res, err := src.FetchResults(ctx, id)
			if err != nil {
				return c.describeFetchError(id, err)
			}

			out := cmd.OutOrStdout()
			opts := c.renderOptions()
			if err := render.WinSummary(out, res, opts); err != nil {
				return err
			}
			if summaryOnly {
				return nil
			}

			view, err := simulations.NewChartBuilder(c.logger, nil).Build(ctx, res)
			if err != nil {
				return fmt.Errorf("failed to build histogram: %w", err)
			}
			fmt.Fprintln(out)
			return render.Histogram(out, view, opts)
		},
	}
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "skip the score distribution chart")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load venues, games and simulations CSV files into the local database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.withTimeout(cmd.Context())
			defer cancel()

			st, err := sqlite.Open(ctx, c.dbPath)
			if err != nil {
				return fmt.Errorf("failed to open db: %w", err)
			}
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf(cmd.ErrOrStderr(), "failed to close db: %v\n", cerr)
				}
			}()

			res, err := loader.New(dataDir, c.logger, nil).Load(ctx, st)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if res.Skipped {
				fmt.Fprintf(out, "%s already has data; nothing imported\n", c.dbPath)
				return nil
			}
			fmt.Fprintf(out, "Imported %s venues, %s teams, %s games and %s simulations into %s\n",
				humanize.Comma(int64(res.Venues)),
				humanize.Comma(int64(res.Teams)),
				humanize.Comma(int64(res.Games)),
				humanize.Comma(int64(res.Simulations)),
				c.dbPath,
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", defaultDataDir, "directory holding venues.csv, games.csv and simulations.csv")
	return cmd
}
