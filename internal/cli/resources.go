package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/mpc-dashboard/pkg/apiclient"
	"github.com/samvad-hq/mpc-dashboard/pkg/dashboard"
	"github.com/samvad-hq/mpc-dashboard/pkg/table"
)

type row = map[string]any

// resource describes one browsable backend collection.
type resource struct {
	name    string
	short   string
	list    func(*dashboard.API, context.Context, apiclient.Params) (any, error)
	get     func(*dashboard.API, context.Context, int) (any, error)
	columns []table.Column[row]
}

func fullName(p table.CellParams[row]) any {
	first, _ := p.Row.GetValue("first_name").(string)
	last, _ := p.Row.GetValue("last_name").(string)
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return nil
	}
	return name
}

var filmsResource = resource{
	name:  "films",
	short: "Browse the film catalog",
	list:  (*dashboard.API).Films,
	get:   (*dashboard.API).Film,
	columns: []table.Column[row]{
		{AccessorKey: "film_id", Header: "id"},
		{AccessorKey: "title"},
		{AccessorKey: "release_year", Header: "year"},
		{AccessorKey: "rating"},
		{AccessorKey: "rental_rate", Header: "rate"},
		{AccessorKey: "length"},
	},
}

var actorsResource = resource{
	name:  "actors",
	short: "Browse actors",
	list:  (*dashboard.API).Actors,
	get:   (*dashboard.API).Actor,
	columns: []table.Column[row]{
		{AccessorKey: "actor_id", Header: "id"},
		{ID: "name", Header: "name", Cell: fullName},
		{AccessorKey: "last_update", Header: "updated"},
	},
}

var customersResource = resource{
	name:  "customers",
	short: "Browse customers",
	list:  (*dashboard.API).Customers,
	get:   (*dashboard.API).Customer,
	columns: []table.Column[row]{
		{AccessorKey: "customer_id", Header: "id"},
		{ID: "name", Header: "name", Cell: fullName},
		{AccessorKey: "email"},
		{AccessorKey: "active"},
	},
}

func newResourceCmd(rt *runtime, res resource) *cobra.Command {
	cmd := &cobra.Command{
		Use:   res.name,
		Short: res.short,
	}

	var (
		page   int
		limit  int
		extras []string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", res.name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := apiclient.Params{}
			if cmd.Flags().Changed("page") {
				params = params.Set("page", page)
			}
			if cmd.Flags().Changed("limit") {
				params = params.Set("limit", limit)
			}
			params, err := applyParamFlags(params, extras)
			if err != nil {
				return err
			}

			v, err := res.list(rt.dash.API(), cmd.Context(), params)
			if err != nil {
				return err
			}
			return rt.writeResult(v, res.columns)
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&limit, "limit", 20, "page size")
	list.Flags().StringArrayVar(&extras, "param", nil, "extra query parameter as key=value (repeatable)")

	get := &cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Show one of the %s by id", res.name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			v, err := res.get(rt.dash.API(), cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.writeResult(v, nil)
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// applyParamFlags appends key=value pairs in the order given.
func applyParamFlags(params apiclient.Params, pairs []string) (apiclient.Params, error) {
	for _, raw := range pairs {
		key, value, ok := strings.Cut(raw, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q (expected key=value)", raw)
		}
		params = params.Set(key, value)
	}
	return params, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q (expected a positive integer)", raw)
	}
	return id, nil
}
