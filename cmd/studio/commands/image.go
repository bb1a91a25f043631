package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var imageOutput string

var imageCmd = &cobra.Command{
	Use:   "image <prompt>",
	Short: "Generate an image",
	Long: `Generate one image from a description and save it.

Examples:
  studio image "ปกนิยายแฟนตาซี ปราสาทกลางหมอก"
  studio image -o cover.png "ภาพวาดสีน้ำ เรือนไทยริมน้ำ"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		result := a.studio.GenerateImage(ctx, strings.Join(args, " "))
		if !result.Success {
			return errors.New(result.Error)
		}

		path := imageOutput
		if path == "" {
			path = fmt.Sprintf("pookanfai_image_%s%s", time.Now().Format("20060102150405"), imageExtension(result.MIMEType))
		}
		if err := os.WriteFile(path, result.Image, 0o644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		printSuccess("Image saved: %s (%d bytes)", path, len(result.Image))
		return nil
	},
}

func imageExtension(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func init() {
	imageCmd.Flags().StringVarP(&imageOutput, "output", "o", "", "output file (default pookanfai_image_<timestamp>.png)")
}
