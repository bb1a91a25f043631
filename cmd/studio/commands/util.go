package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pookanfai/studio/providers/ai/gemini"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff71ce")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3d8"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#01cdfe")).Bold(true)
)

var nowFunc = time.Now

// searchKeywords mark a message that asks for current information.
var searchKeywords = []string{"ค้นหา", "ข้อมูล", "ล่าสุด", "ราคา"}

// wantsSearch reports whether text should be sent with Google Search
// grounding.
func wantsSearch(text string) bool {
	for _, keyword := range searchKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// signalContext is canceled on Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// readArgsOrStdin joins args, or reads stdin when there are none.
func readArgsOrStdin(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(os.Stderr, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// formatGrounding renders search sources as a numbered list.
func formatGrounding(g *gemini.Grounding) string {
	if g == nil || len(g.Sources) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("แหล่งข้อมูล:\n")
	for _, source := range g.Sources {
		title := source.Title
		if title == "" {
			title = source.URI
		}
		fmt.Fprintf(&b, "  [%d] %s - %s\n", source.Index+1, title, source.URI)
	}
	if len(g.Queries) > 0 {
		fmt.Fprintf(&b, "คำค้น: %s\n", strings.Join(g.Queries, ", "))
	}
	return b.String()
}

// maskKey shows only the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
