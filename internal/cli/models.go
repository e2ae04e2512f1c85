package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/types"
	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the llm and vlm models that can be selected by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printModels(cmd.OutOrStdout(), service.Models())
		},
	}
}

func printModels(w io.Writer, models *service.ModelsResponse) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tID\tMODEL\tLEVEL")
	rows := func(kind string, items []types.ModelInfo) {
		for _, m := range items {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", kind, m.ID, m.ModelName, m.DevLevel)
		}
	}
	rows("llm", models.LLM)
	rows("vlm", models.VLM)
	return tw.Flush()
}
