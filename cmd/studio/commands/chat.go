package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

var (
	chatCharacter   string
	chatDescription string
	chatVoice       string
	chatAutoSpeak   bool
	chatAssistant   bool
	chatDownloadDir string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive roleplay and assistant chat",
	Long: `Open the interactive chat.

Two conversations run side by side (switch with Tab):
  roleplay  - talk to a character you describe
  assistant - talk to Pookanfai, the writing assistant. Messages mentioning
              ค้นหา, ข้อมูล, ล่าสุด or ราคา are grounded with Google Search.

Keys:
  enter   send         tab     switch conversation
  ctrl+s  speak reply  ctrl+x  stop playback
  ctrl+d  download     esc     quit

Examples:
  studio chat --character "ขุนแผน" --description "ทหารเอกผู้มีเวทมนตร์"
  studio chat --assistant`,
	RunE: func(cmd *cobra.Command, args []string) error {
		states := make(chan playback.State, 1)
		a, err := newApp(appOptions{
			quietLogs: true,
			onState:   func(s playback.State) { offerState(states, s) },
		})
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requireKey(); err != nil {
			return err
		}

		voice := a.cfg.Voice()
		if chatVoice != "" {
			v, ok := gemini.ParseVoice(chatVoice)
			if !ok {
				return fmt.Errorf("unknown voice %q (choose from %v)", chatVoice, gemini.Voices())
			}
			voice = v
		}

		chat := studio.NewChat(a.studio, nil,
			studio.WithCoordinator(a.coordinator, chatAutoSpeak),
			studio.WithVoice(voice),
		)

		mode := modeAssistant
		if !chatAssistant {
			if chatCharacter == "" || chatDescription == "" {
				return errors.New(studio.MsgMissingCharacter + " (--character, --description)")
			}
			if _, err := chat.StartRoleplay(chatCharacter, chatDescription); err != nil {
				return err
			}
			mode = modeRoleplay
		}

		downloadDir := chatDownloadDir
		if downloadDir == "" {
			downloadDir = a.cfg.DownloadDir()
		}

		ctx, cancel := signalContext()
		defer cancel()

		m := newChatModel(ctx, chat, a.coordinator, states, mode, downloadDir)
		_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	},
}

func init() {
	chatCmd.Flags().StringVar(&chatCharacter, "character", "", "roleplay character name")
	chatCmd.Flags().StringVar(&chatDescription, "description", "", "roleplay character personality and role")
	chatCmd.Flags().StringVar(&chatVoice, "voice", "", "voice for spoken replies (default from config)")
	chatCmd.Flags().BoolVar(&chatAutoSpeak, "auto-speak", false, "speak every roleplay reply")
	chatCmd.Flags().BoolVar(&chatAssistant, "assistant", false, "start in the assistant conversation")
	chatCmd.Flags().StringVar(&chatDownloadDir, "download-dir", "", "directory for ctrl+d downloads (default from config)")
}
