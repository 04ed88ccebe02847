// Package export projects a PRD document into target-specific text
// artifacts: an IDE build prompt, an agent step script, and a Markdown
// report. Every projection is a pure function over the document; empty
// sequences render as empty sections, never as an error.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vibespecs/vibespecs/internal/prd"
)

// MarkdownFilename is the fixed download name for the Markdown projection.
const MarkdownFilename = "prd-output.md"

// Format identifies one of the export surfaces.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPrompt   Format = "prompt"
	FormatSteps    Format = "steps"
	FormatJSON     Format = "json"
)

// Render returns the projection of doc for the given format.
func Render(doc *prd.Document, format Format) (string, error) {
	switch format {
	case FormatMarkdown:
		return Markdown(doc), nil
	case FormatPrompt:
		return BuildPrompt(doc), nil
	case FormatSteps:
		return AgentSteps(doc), nil
	case FormatJSON:
		return RawJSON(doc)
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
}

// RawJSON returns the indented JSON form of the document, the same text
// the clipboard copy surface uses.
func RawJSON(doc *prd.Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal PRD: %w", err)
	}
	return string(data), nil
}

// bullets renders items as "- item" lines. Empty input renders nothing.
func bullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}
