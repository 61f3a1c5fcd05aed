package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/mpc-dashboard/internal/app"
	"github.com/samvad-hq/mpc-dashboard/pkg/dashboard"
)

func newStatsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show rental, customer and revenue statistics",
	}

	reports := []struct {
		use   string
		short string
		fetch func(*dashboard.API, context.Context) (any, error)
	}{
		{use: "rentals", short: "Film rental statistics", fetch: (*dashboard.API).FilmRentalStats},
		{use: "customers", short: "Customer spending", fetch: (*dashboard.API).CustomerSpending},
		{use: "revenue", short: "Revenue trends", fetch: (*dashboard.API).RevenueTrends},
	}
	for _, r := range reports {
		fetch := r.fetch
		cmd.AddCommand(&cobra.Command{
			Use:   r.use,
			Short: r.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				v, err := fetch(rt.dash.API(), cmd.Context())
				if err != nil {
					return err
				}
				return rt.writeResult(v, nil)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Fetch every report at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := rt.dash.Overview(cmd.Context())
			if len(reports) == 0 {
				return err
			}
			if rt.format == formatJSON {
				if werr := writeJSON(rt.out, reports); werr != nil {
					return werr
				}
				return err
			}
			for _, name := range []string{app.ReportRentals, app.ReportCustomers, app.ReportRevenue} {
				v, ok := reports[name]
				if !ok {
					continue
				}
				if _, werr := fmt.Fprintf(rt.out, "== %s ==\n", name); werr != nil {
					return werr
				}
				if werr := rt.writeResult(v, nil); werr != nil {
					return werr
				}
			}
			return err
		},
	})
	return cmd
}
