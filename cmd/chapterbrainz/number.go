package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/chapterbrainz/internal/numeral"
	"github.com/jackzampolin/chapterbrainz/internal/output"
)

var numberNotation string

// rendering is one notation's output for the number command.
type rendering struct {
	Notation numeral.Notation `json:"notation" yaml:"notation"`
	Value    string           `json:"value,omitempty" yaml:"value,omitempty"`
	Error    string           `json:"error,omitempty" yaml:"error,omitempty"`
}

var numberCmd = &cobra.Command{
	Use:   "number <n>",
	Short: "Render an integer in a numeral notation",
	Long: `Render an integer in one notation, or in every notation when --notation is omitted.

Notations: numeral, roman_numeral, kanji, hiragana, hepburn, formal_kanji.

Examples:
  chapterbrainz number 12 --notation kanji      # 十二
  chapterbrainz number 2024 --notation roman_numeral
  chapterbrainz number 160 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%q is not an integer", args[0])
		}

		if numberNotation != "" {
			notation, err := numeral.ParseNotation(numberNotation)
			if err != nil {
				return err
			}
			s, err := numeral.Format(n, notation)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		}

		out := make([]rendering, 0, len(numeral.Notations))
		for _, notation := range numeral.Notations {
			r := rendering{Notation: notation}
			if s, err := numeral.Format(n, notation); err != nil {
				r.Error = err.Error()
			} else {
				r.Value = s
			}
			out = append(out, r)
		}
		return output.Write(cmd.OutOrStdout(), out)
	},
}

func init() {
	numberCmd.Flags().StringVarP(&numberNotation, "notation", "n", "", "notation to render")
}
