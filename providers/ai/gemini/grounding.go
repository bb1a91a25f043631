package gemini

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Grounding is the search context a grounded answer was built from.
type Grounding struct {
	Queries []string
	Sources []Source

	// Suggestions is the search-suggestion widget converted to markdown so a
	// terminal can show it. Empty when the service sent none or it failed
	// to convert.
	Suggestions string
}

// Source is one web page cited by a grounded answer.
type Source struct {
	Index int
	URI   string
	Title string
}

func mapGrounding(gm *GroundingMetadata) *Grounding {
	result := &Grounding{Queries: gm.WebSearchQueries}

	for i, chunk := range gm.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		result.Sources = append(result.Sources, Source{Index: i, URI: chunk.Web.URI, Title: chunk.Web.Title})
	}

	if gm.SearchEntryPoint != nil && gm.SearchEntryPoint.RenderedContent != "" {
		result.Suggestions = suggestionsMarkdown(gm.SearchEntryPoint.RenderedContent)
	}

	if len(result.Queries) == 0 && len(result.Sources) == 0 && result.Suggestions == "" {
		return nil
	}
	return result
}

func suggestionsMarkdown(html string) string {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(markdown)
}
