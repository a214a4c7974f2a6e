package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/chapterbrainz/internal/templating"
)

var sortCmd = &cobra.Command{
	Use:   "sort <string>...",
	Short: "Sanitize sort strings",
	Long: `Strip one leading delimiter pair from each argument, as done for catalog sort keys.

Examples:
  chapterbrainz sort "【第1話】映画"     # 第1話 映画
  chapterbrainz sort "[Dai 1 Wa] Eiga" # Dai 1 Wa Eiga`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range args {
			fmt.Fprintln(cmd.OutOrStdout(), templating.SanitizeSort(s))
		}
	},
}
