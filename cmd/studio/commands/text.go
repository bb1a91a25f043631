package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

var (
	textSystem string
	textSearch bool
)

var textCmd = &cobra.Command{
	Use:   "text [prompt]",
	Short: "Generate text",
	Long: `Generate text with the writer persona.

The prompt is read from the arguments, or from stdin when none are given.

Examples:
  studio text "เขียนฉากเปิดเรื่องในตลาดน้ำยามเช้า"
  studio text --search "ราคาทองวันนี้"
  cat chapter1.txt | studio text --system "สรุปเนื้อหาเป็นข้อๆ"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, err := readArgsOrStdin(args)
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

		request := studio.TextRequest{Prompt: prompt, Instructions: textSystem}
		if textSearch {
			request.Tools = []gemini.Tool{gemini.ToolGoogleSearch}
		}

		ctx, cancel := signalContext()
		defer cancel()

		result := a.studio.GenerateTextResult(ctx, request)
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		if sources := formatGrounding(result.Grounding); sources != "" {
			fmt.Fprint(cmd.OutOrStdout(), "\n"+sources)
		}
		if !result.OK() {
			return fmt.Errorf("text generation failed: %w", result.Err)
		}
		return nil
	},
}

func init() {
	textCmd.Flags().StringVar(&textSystem, "system", studio.WriterInstructions, "system instructions")
	textCmd.Flags().BoolVar(&textSearch, "search", false, "ground the answer with Google Search")
}
