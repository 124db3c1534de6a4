package format

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestFormat_Paragraph(t *testing.T) {
	f := NewFormatter(nil)

	if got := f.Format("Hello"); got != "<p>Hello</p>" {
		t.Fatalf("Format() = %q, want %q", got, "<p>Hello</p>")
	}
}

func TestFormat_Markdown(t *testing.T) {
	f := NewFormatter(nil)

	got := f.Format("**Ryzen** and `code`")
	if !strings.Contains(got, "<strong>Ryzen</strong>") {
		t.Errorf("Expected bold markup, got %q", got)
	}
	if !strings.Contains(got, "<code>code</code>") {
		t.Errorf("Expected code markup, got %q", got)
	}
}

func TestFormat_ExpandsLiteralEscapes(t *testing.T) {
	f := NewFormatter(nil)

	got := f.Format(`first\nsecond\tindented`)
	if !strings.Contains(got, "first<br>second") {
		t.Errorf("Expected literal \\n to become a line break, got %q", got)
	}
	if strings.Contains(got, `\t`) {
		t.Errorf("Expected literal \\t to be expanded, got %q", got)
	}
}

func TestFormat_TrimsAndEmpty(t *testing.T) {
	f := NewFormatter(nil)

	if got := f.Format("   "); got != "" {
		t.Errorf("Format(blank) = %q, want empty", got)
	}
	if got := f.Format("  Hello \n"); got != "<p>Hello</p>" {
		t.Errorf("Format() = %q, want trimmed paragraph", got)
	}
}

func TestFormat_Idempotent(t *testing.T) {
	f := NewFormatter(nil)

	inputs := []string{
		"Hello",
		"Fish & chips",
		"Hello<br>world",
		"Quotes \"here\" and don't",
	}
	for _, in := range inputs {
		once := f.Format(in)
		twice := f.Format(once)
		if once != twice {
			t.Errorf("Format not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
		if strings.Contains(twice, "&amp;amp;") {
			t.Errorf("Double escaping for %q: %q", in, twice)
		}
	}
}

func TestFormat_StripsScripts(t *testing.T) {
	f := NewFormatter(nil)

	got := f.Format("hi <script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Fatalf("Expected script to be sanitized, got %q", got)
	}
}

func TestFormat_RenderFailureFallsBack(t *testing.T) {
	var logs bytes.Buffer
	f := NewFormatter(slog.New(slog.NewTextHandler(&logs, nil)))
	f.convert = func([]byte, io.Writer) error {
		return errors.New("boom")
	}

	got := f.Format(`  raw **text**\nnext  `)
	if got != "raw **text**<br>next" {
		t.Fatalf("Format() = %q, want pre-render text", got)
	}
	if !strings.Contains(logs.String(), "format_render_failed") {
		t.Fatalf("Expected failure to be logged, got %q", logs.String())
	}
}

func TestExpandEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\nb`, "a<br>b"},
		{`a\tb`, "a    b"},
		{"real\nnewline", "real\nnewline"},
		{`none`, "none"},
	}
	for _, tt := range tests {
		if got := ExpandEscapes(tt.in); got != tt.want {
			t.Errorf("ExpandEscapes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAugment(t *testing.T) {
	const url = "https://example.com/support"

	got := Augment("Hello", url)
	if !strings.HasPrefix(got, "Hello<br>Для дополнительной информации") {
		t.Errorf("Expected augmentation, got %q", got)
	}
	if !strings.Contains(got, url) {
		t.Errorf("Expected reference URL, got %q", got)
	}

	withLink := "See http://amd.com"
	if got := Augment(withLink, url); got != withLink {
		t.Errorf("Text with a link must not be augmented, got %q", got)
	}

	if again := Augment(got, url); again != got {
		t.Errorf("Augment must not stack suffixes, got %q", again)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "paragraph", in: "<p>Hello</p>", want: "Hello"},
		{name: "breaks", in: "<p>a<br>b<br/>c</p>", want: "a\nb\nc"},
		{name: "entities", in: "<p>Fish &amp; chips</p>", want: "Fish & chips"},
		{name: "paragraphs", in: "<p>one</p>\n<p>two</p>", want: "one\n\ntwo"},
		{name: "list", in: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>", want: "• a\n\n• b"},
		{name: "link", in: `<a href="https://x">site</a>`, want: "site"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
