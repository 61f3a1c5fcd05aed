package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMPCCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mpc",
		Short: "Natural language analysis and page generation",
	}
	cmd.AddCommand(newAnalyzeCmd(rt), newGeneratePageCmd(rt))
	return cmd
}

func newAnalyzeCmd(rt *runtime) *cobra.Command {
	var query, dataType string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the backend to analyze data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("--query is required")
			}
			v, err := rt.dash.API().AnalyzeData(cmd.Context(), query, dataType)
			if err != nil {
				return err
			}
			return rt.writeResult(v, nil)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "question to analyze")
	cmd.Flags().StringVar(&dataType, "data-type", "films", "data set the question is about")
	return cmd
}

func newGeneratePageCmd(rt *runtime) *cobra.Command {
	var (
		name, description, dataType string
		noSave                      bool
	)
	cmd := &cobra.Command{
		Use:   "generate-page",
		Short: "Generate a dashboard page and archive it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			out, err := rt.dash.GeneratePage(cmd.Context(), name, description, dataType, !noSave)
			if err != nil {
				return err
			}
			if rt.format == formatJSON {
				return writeJSON(rt.out, out.Result)
			}
			return writeFields(rt.out, []field{
				{Key: "page", Value: name},
				{Key: "title", Value: out.Page.Title},
				{Key: "summary", Value: out.Page.Summary},
				{Key: "saved", Value: out.Saved},
				{Key: "notified", Value: out.Notified},
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "page name")
	cmd.Flags().StringVar(&description, "description", "", "what the page should show")
	cmd.Flags().StringVar(&dataType, "data-type", "films", "data set backing the page")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not archive the generated page")
	return cmd
}
