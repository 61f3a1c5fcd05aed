package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/samvad-hq/mpc-dashboard/pkg/dashboard"
)

// Report names used by Overview.
const (
	ReportRentals   = "rentals"
	ReportCustomers = "customers"
	ReportRevenue   = "revenue"
)

type report struct {
	name  string
	fetch func(*dashboard.API, context.Context) (any, error)
}

var overviewReports = []report{
	{name: ReportRentals, fetch: (*dashboard.API).FilmRentalStats},
	{name: ReportCustomers, fetch: (*dashboard.API).CustomerSpending},
	{name: ReportRevenue, fetch: (*dashboard.API).RevenueTrends},
}

// Overview fetches every statistics report concurrently. Reports that fail
// are left out of the map and their errors are joined.
func (d *Dashboard) Overview(ctx context.Context) (map[string]any, error) {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		out  = make(map[string]any, len(overviewReports))
		errs []error
	)

	for _, r := range overviewReports {
		wg.Add(1)
		go func(r report) {
			defer wg.Done()
			v, err := r.fetch(d.api, ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s report: %w", r.name, err))
				d.log.WarnObj("stats report failed", "report_error", map[string]any{
					"report": r.name,
					"error":  err.Error(),
				})
				return
			}
			out[r.name] = v
		}(r)
	}
	wg.Wait()

	d.log.InfoObj("stats overview completed", "overview_result", map[string]any{
		"reports_fetched": len(out),
		"reports_failed":  len(errs),
	})
	return out, errors.Join(errs...)
}
