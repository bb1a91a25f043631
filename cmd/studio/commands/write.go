package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pookanfai/studio/core/studio"
)

var writeCmd = &cobra.Command{
	Use:   "write <preset> [input]",
	Short: "Run a writing preset",
	Long: `Run one of the writing tools on your input.

Run 'studio write' with no arguments to list the presets.

Examples:
  studio write plot "มังกร, ราชวงศ์, การแก้แค้น"
  studio write refine "ฝนตกหนักมากในคืนนั้น"
  studio write editor < chapter1.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listPresets(cmd)
		}
		if _, ok := studio.LookupPreset(args[0]); !ok {
			return fmt.Errorf("unknown preset %q, run 'studio write' to list presets", args[0])
		}

		input, err := readArgsOrStdin(args[1:])
		if err != nil {
			return err
		}

		a, err := newApp(appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requireKey(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		text, err := a.studio.RunPreset(ctx, args[0], input)
		if errors.Is(err, studio.ErrEmptyInput) {
			return errors.New(text)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func listPresets(cmd *cobra.Command) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, titleStyle.Render("PRESET")+"\t"+titleStyle.Render("TITLE"))
	for _, p := range studio.Presets() {
		fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Title)
	}
	return w.Flush()
}
