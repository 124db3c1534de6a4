// Package format turns assistant replies into display-ready HTML.
//
// The stored transcript keeps the raw reply text; everything here is a
// derived view used only for rendering.
package format

import (
	"bytes"
	"html"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const tabReplacement = "    "

// Formatter renders markdown replies to sanitized HTML.
type Formatter struct {
	convert func(src []byte, w io.Writer) error
	policy  *bluemonday.Policy
	logger  *slog.Logger
}

// NewFormatter creates a Formatter using GitHub-flavoured markdown.
func NewFormatter(logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	return &Formatter{
		convert: func(src []byte, w io.Writer) error {
			return md.Convert(src, w)
		},
		policy: bluemonday.UGCPolicy(),
		logger: logger,
	}
}

// Format expands literal escape sequences and renders the result as HTML.
// A rendering failure is logged and the pre-render text is returned.
func (f *Formatter) Format(text string) string {
	prepared := strings.TrimSpace(ExpandEscapes(text))
	if prepared == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := f.convert([]byte(prepared), &buf); err != nil {
		f.logger.Warn("format_render_failed", "error", err, "length", len(prepared))
		return prepared
	}

	return strings.TrimSpace(f.policy.Sanitize(buf.String()))
}

// ExpandEscapes replaces the two-character sequences `\n` and `\t` that some
// models emit literally.
func ExpandEscapes(text string) string {
	text = strings.ReplaceAll(text, `\n`, "<br>")
	return strings.ReplaceAll(text, `\t`, tabReplacement)
}

var (
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndPattern  = regexp.MustCompile(`(?i)</(p|h[1-6]|pre|blockquote|ul|ol|table|tr)>`)
	listItemPattern  = regexp.MustCompile(`(?i)<li[^>]*>`)
	blankRunsPattern = regexp.MustCompile(`\n{3,}`)
	strictPolicy     = bluemonday.StrictPolicy()
)

// PlainText projects rendered HTML onto plain text for terminals and exports.
func PlainText(rendered string) string {
	text := breakPattern.ReplaceAllString(rendered, "\n")
	text = blockEndPattern.ReplaceAllString(text, "\n\n")
	text = listItemPattern.ReplaceAllString(text, "• ")
	text = strings.ReplaceAll(text, "</li>", "\n")
	text = html.UnescapeString(strictPolicy.Sanitize(text))
	text = blankRunsPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
