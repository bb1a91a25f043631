// Command studio is a terminal host for the Pookanfai writing studio.
//
// Usage:
//
//	studio [flags] <command> [args]
//
// Commands:
//
//	text    - generate text, optionally grounded with Google Search
//	image   - generate an image
//	speak   - synthesize speech and play it
//	write   - run a writing preset (plot, outline, world, ...)
//	chat    - interactive roleplay / assistant chat
//	key     - manage the stored API key
//
// Configuration:
//
//	The API key is read from GEMINI_API_KEY or STUDIO_API_KEY (environment
//	or .env), then from ~/.pookanfai/studio/config.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/pookanfai/studio/cmd/studio/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
