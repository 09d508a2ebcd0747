package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fabsim/model"
	"fabsim/theory"
)

var theoryCmd = &cobra.Command{
	Use:       "theory <process>",
	Short:     "Explain a fabrication step",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(model.Oxidation), string(model.Etch), string(model.Deposition)},
	RunE: func(cmd *cobra.Command, args []string) error {
		process := model.Process(args[0])
		if !isTerminal(cmd.OutOrStdout()) {
			md, err := theory.Markdown(process)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		width := 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
		out, err := theory.Render(process, width)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(theoryCmd)
}
