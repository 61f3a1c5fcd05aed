package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/mpc-dashboard/internal/pages"
	"github.com/samvad-hq/mpc-dashboard/pkg/table"
)

func formatTime(key string) func(table.CellParams[pages.Page]) any {
	return func(p table.CellParams[pages.Page]) any {
		t, _ := p.Row.GetValue(key).(time.Time)
		if t.IsZero() {
			return nil
		}
		return t.Local().Format(time.RFC3339)
	}
}

var pageColumns = []table.Column[pages.Page]{
	{AccessorKey: "name"},
	{AccessorKey: "data_type", Header: "type"},
	{AccessorKey: "title"},
	{ID: "saved", Header: "saved", Cell: formatTime("saved_at")},
	{ID: "expires", Header: "expires", Cell: formatTime("expires_at")},
}

func newPagesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Manage archived generated pages",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List archived pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := rt.dash.Pages()
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}
			if rt.format == formatJSON {
				if all == nil {
					all = []pages.Page{}
				}
				return writeJSON(rt.out, all)
			}
			if len(all) == 0 {
				_, err := fmt.Fprintln(rt.out, "No archived pages.")
				return err
			}
			return table.Render(rt.out, pageColumns, all)
		},
	}

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Show an archived page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.dash.Pages()
			if err != nil {
				return err
			}
			p, ok, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("page %q not found", args[0])
			}
			if rt.format == formatJSON {
				return writeJSON(rt.out, p)
			}
			var payload any
			if err := json.Unmarshal(p.Payload, &payload); err != nil {
				payload = string(p.Payload)
			}
			return writeFields(rt.out, []field{
				{Key: "name", Value: p.Name},
				{Key: "description", Value: p.Description},
				{Key: "data_type", Value: p.DataType},
				{Key: "title", Value: p.Title},
				{Key: "summary", Value: p.Summary},
				{Key: "saved_at", Value: p.SavedAt.Local().Format(time.RFC3339)},
				{Key: "expires_at", Value: p.ExpiresAt.Local().Format(time.RFC3339)},
				{Key: "payload", Value: payload},
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Remove an archived page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.dash.Pages()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			_, err = fmt.Fprintf(rt.out, "Deleted %s\n", args[0])
			return err
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}
