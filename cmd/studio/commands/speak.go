package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pookanfai/studio/core/playback"
	"github.com/pookanfai/studio/core/studio"
	"github.com/pookanfai/studio/providers/ai/gemini"
)

var (
	speakVoice    string
	speakDownload string
	speakNoPlay   bool
)

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Synthesize speech and play it",
	Long: `Synthesize speech with one of the prebuilt voices (Puck, Kore, Fenrir,
Aoede) and play it. Text over 2000 characters is shortened.

Examples:
  studio speak "กาลครั้งหนึ่งนานมาแล้ว"
  studio speak --voice Fenrir --download . < chapter1.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readArgsOrStdin(args)
		if err != nil {
			return err
		}
		if studio.PrepareSpeechText(text) == "" {
			return errors.New(studio.MsgNothingToSpeak)
		}

		idle := make(chan struct{}, 1)
		a, err := newApp(appOptions{
			silent: speakNoPlay,
			onState: func(s playback.State) {
				if s == playback.StateIdle {
					select {
					case idle <- struct{}{}:
					default:
					}
				}
			},
		})
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.requireKey(); err != nil {
			return err
		}

		voice := a.cfg.Voice()
		if speakVoice != "" {
			v, ok := gemini.ParseVoice(speakVoice)
			if !ok {
				return fmt.Errorf("unknown voice %q (choose from %v)", speakVoice, gemini.Voices())
			}
			voice = v
		}

		ctx, cancel := signalContext()
		defer cancel()

		printInfo("Synthesizing with %s...", voice)
		if err := a.coordinator.Speak(ctx, a.studio.SpeechFunc(text, voice)); err != nil {
			if errors.Is(err, studio.ErrSpeechFailed) {
				return errors.New(studio.MsgSpeechFailed)
			}
			return err
		}

		if !speakNoPlay {
			select {
			case <-idle:
			case <-ctx.Done():
				a.coordinator.Stop()
			}
		}

		if speakDownload != "" {
			path, err := a.coordinator.Download(speakDownload, nowFunc())
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			printSuccess("Audio saved: %s", path)
		}
		return nil
	},
}

func init() {
	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "voice: Puck, Kore, Fenrir or Aoede (default from config)")
	speakCmd.Flags().StringVar(&speakDownload, "download", "", "save the WAV into this directory")
	speakCmd.Flags().BoolVar(&speakNoPlay, "no-play", false, "do not play the audio")
}
