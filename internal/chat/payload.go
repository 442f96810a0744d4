// Package chat builds the pre-filled payload for the external chat
// widget. The widget reads a single URL parameter carrying the book's
// title, author and a free-text content blob, so the content must be
// truncated to a safe encoded byte budget before the URL is assembled.
package chat

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/hondana-dev/hondana/internal/book"
)

const ellipsis = "..."

// DefaultByteBudget bounds the URL-encoded size of the content field.
// Anything past it risks being cut off by intermediaries.
const DefaultByteBudget = 1500

// Inputs is the widget's expected parameter shape.
type Inputs struct {
	BookTitle   string `json:"book_title"`
	BookAuthor  string `json:"book_author"`
	BookContent string `json:"book_content"`
}

// Builder assembles chat widget URLs for books.
type Builder struct {
	baseURL  string
	budget   int
	compress bool
}

// NewBuilder creates a Builder. A zero budget falls back to
// DefaultByteBudget.
func NewBuilder(baseURL string, byteBudget int, compress bool) *Builder {
	if byteBudget <= 0 {
		byteBudget = DefaultByteBudget
	}
	return &Builder{baseURL: baseURL, budget: byteBudget, compress: compress}
}

// Inputs builds the widget parameters for a book, with the content
// field already truncated to the byte budget.
func (bl *Builder) Inputs(b book.Book) Inputs {
	return Inputs{
		BookTitle:   b.Title,
		BookAuthor:  b.Author,
		BookContent: TruncateForURL(ContentOf(b), bl.budget),
	}
}

// URL returns the chat widget URL for a book. When encoding fails the
// bare widget URL is returned so the chat still opens, just without the
// pre-filled context.
func (bl *Builder) URL(b book.Book) string {
	encoded, err := EncodeInputs(bl.Inputs(b), bl.compress)
	if err != nil {
		return bl.baseURL
	}
	return bl.baseURL + "?inputs=" + encoded
}

// ContentOf builds the concise content blob sent to the widget: the
// summary and the introduction, nothing more. The full dossier is
// reserved for CopyText.
func ContentOf(b book.Book) string {
	intro := b.Introduction
	if intro == "" {
		intro = b.Description
	}
	return strings.TrimSpace(b.Summary + "\n\n" + intro)
}

// CopyText builds the full clipboard dossier for a book: every content
// field with Japanese section labels, quotes and reflections capped at
// three each.
func CopyText(b book.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "【タイトル】%s\n【著者】%s\n", b.Title, b.Author)
	fmt.Fprintf(&sb, "\n【要約】\n%s", orNone(b.Summary))
	intro := b.Introduction
	if intro == "" {
		intro = b.Description
	}
	fmt.Fprintf(&sb, "\n\n【導入・紹介】\n%s", orNone(intro))

	if quotes := capAt(len(b.Quotes), 3); quotes > 0 {
		sb.WriteString("\n\n【引用(一部)】")
		for _, q := range b.Quotes[:quotes] {
			fmt.Fprintf(&sb, "\n・%s\n  \"%s\"", q.Title, q.Content)
		}
	}
	if refs := capAt(len(b.Reflections), 3); refs > 0 {
		sb.WriteString("\n\n【考察(一部)】")
		for _, r := range b.Reflections[:refs] {
			fmt.Fprintf(&sb, "\n・%s\n  %s", r.Title, r.Content)
		}
	}
	if len(b.Keywords) > 0 {
		fmt.Fprintf(&sb, "\n\n【キーワード】\n%s", strings.Join(b.Keywords, ", "))
	}
	return sb.String()
}

// TruncateForURL shortens text until its URL-encoded form fits within
// maxBytes, trimming runes from the end. Each pass cuts a third of the
// current overshoot so large texts converge in a few iterations. A
// shortened text gets an ellipsis marker appended; room for the marker
// is reserved inside the budget.
func TruncateForURL(text string, maxBytes int) string {
	if text == "" {
		return ""
	}
	if len(url.QueryEscape(text)) <= maxBytes {
		return text
	}

	limit := maxBytes - len(url.QueryEscape(ellipsis))
	runes := []rune(text)
	encoded := url.QueryEscape(text)
	for len(encoded) > limit && len(runes) > 0 {
		cut := (len(encoded) - limit) / 3
		if cut < 1 {
			cut = 1
		}
		if cut > len(runes) {
			cut = len(runes)
		}
		runes = runes[:len(runes)-cut]
		encoded = url.QueryEscape(string(runes))
	}
	return string(runes) + ellipsis
}

// EncodeInputs serializes the inputs for the URL parameter. With
// compression the JSON is gzipped and base64-encoded before URL
// escaping; without it the JSON is URL-escaped directly.
func EncodeInputs(in Inputs, compress bool) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding chat inputs: %w", err)
	}
	if !compress {
		return url.QueryEscape(string(data)), nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("compressing chat inputs: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("compressing chat inputs: %w", err)
	}
	return url.QueryEscape(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

// DecodeInputs reverses EncodeInputs.
func DecodeInputs(encoded string, compressed bool) (Inputs, error) {
	raw, err := url.QueryUnescape(encoded)
	if err != nil {
		return Inputs{}, fmt.Errorf("unescaping chat inputs: %w", err)
	}

	data := []byte(raw)
	if compressed {
		packed, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return Inputs{}, fmt.Errorf("decoding chat inputs: %w", err)
		}
		zr, err := gzip.NewReader(bytes.NewReader(packed))
		if err != nil {
			return Inputs{}, fmt.Errorf("decompressing chat inputs: %w", err)
		}
		defer zr.Close()
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(zr); err != nil {
			return Inputs{}, fmt.Errorf("decompressing chat inputs: %w", err)
		}
		data = buf.Bytes()
	}

	var in Inputs
	if err := json.Unmarshal(data, &in); err != nil {
		return Inputs{}, fmt.Errorf("decoding chat inputs: %w", err)
	}
	return in, nil
}

func orNone(s string) string {
	if s == "" {
		return "なし"
	}
	return s
}

func capAt(n, max int) int {
	if n > max {
		return max
	}
	return n
}
