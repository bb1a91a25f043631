package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/internal/config"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key in the config file",
	Long: `Store the Gemini API key in ~/.pookanfai/studio/config.yaml (mode 0600).

The key is read from the argument, or from stdin when omitted.
GEMINI_API_KEY and STUDIO_API_KEY still take precedence over the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readArgsOrStdin(args)
		if err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New(studio.MsgKeyRequired)
		}

		store, err := config.NewStore(cfgFile)
		if err != nil {
			return err
		}
		if err := store.SetAPIKey(key); err != nil {
			return err
		}
		printSuccess("%s (%s)", studio.MsgKeySaved, store.Path())
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API key comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.Configured() {
			fmt.Fprintln(cmd.OutOrStdout(), studio.MsgNotConfigured)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "key:    %s\nsource: %s\nfile:   %s\n",
			maskKey(cfg.APIKey()), cfg.KeySource(), cfg.StorePath())
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
