package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile    string
	envFile    string
	playerName string
	logFile    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "studio",
	Short: "Pookanfai writing studio",
	Long: `Pookanfai Studio - an AI writing companion for Thai fiction.

Generate prose, images and narrated audio with the Gemini API:
  - Text generation with optional Google Search grounding
  - Writing presets: plot ideas, outlines, world building, naming, ...
  - Character roleplay and the Pookanfai assistant chat
  - Text-to-speech with downloadable WAV output

Examples:
  # Store the API key once
  studio key set AIza...

  # Brainstorm plots
  studio write plot "มังกร, ราชวงศ์, การแก้แค้น"

  # Chat with a character and hear the replies
  studio chat --character "ขุนแผน" --description "ทหารเอกผู้มีเวทมนตร์" --auto-speak
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pookanfai/studio/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file to read")
	rootCmd.PersistentFlags().StringVar(&playerName, "player", "auto", "audio player: auto, none, or a program name")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(keyCmd)
}
