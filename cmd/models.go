package cmd

import (
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models <region>",
	Short: "List the model families with an artifact for a region",
	Args:  cobra.ExactArgs(1),
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, args []string) error {
	label := args[0]
	families := newEngine().AvailableModels(label)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.String())
	}
	return emit(struct {
		Region          string   `json:"region"`
		AvailableModels []string `json:"available_models"`
	}{Region: label, AvailableModels: names})
}
