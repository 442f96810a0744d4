package chat_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/hondana-dev/hondana/internal/book"
	"github.com/hondana-dev/hondana/internal/chat"
)

func TestTruncateForURL_ShortTextUntouched(t *testing.T) {
	if got := chat.TruncateForURL("short", 1500); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := chat.TruncateForURL("", 1500); got != "" {
		t.Errorf("empty text: got %q", got)
	}
}

func TestTruncateForURL_OversizedFitsBudget(t *testing.T) {
	// Japanese text triples in size under URL encoding, which is the
	// case the budget exists for.
	text := strings.Repeat("本を読むことは旅をすることに似ている。", 200)
	got := chat.TruncateForURL(text, 1500)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text missing ellipsis: %q", got[len(got)-20:])
	}
	if encoded := url.QueryEscape(got); len(encoded) > 1500 {
		t.Errorf("encoded size %d exceeds budget", len(encoded))
	}
	if len(got) < 100 {
		t.Errorf("truncation overshot: only %d bytes kept", len(got))
	}
}

func TestTruncateForURL_ASCIIBudget(t *testing.T) {
	text := strings.Repeat("a", 2000)
	got := chat.TruncateForURL(text, 500)
	if encoded := url.QueryEscape(got); len(encoded) > 500 {
		t.Errorf("encoded size %d exceeds budget", len(encoded))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("missing ellipsis")
	}
}

func TestEncodeInputs_GzipRoundTrip(t *testing.T) {
	in := chat.Inputs{
		BookTitle:   "他者と働く",
		BookAuthor:  "宇田川元一",
		BookContent: "対話についての本。",
	}
	encoded, err := chat.EncodeInputs(in, true)
	if err != nil {
		t.Fatalf("EncodeInputs: %v", err)
	}
	got, err := chat.DecodeInputs(encoded, true)
	if err != nil {
		t.Fatalf("DecodeInputs: %v", err)
	}
	if got != in {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestEncodeInputs_PlainRoundTrip(t *testing.T) {
	in := chat.Inputs{BookTitle: "T", BookAuthor: "A", BookContent: "C"}
	encoded, err := chat.EncodeInputs(in, false)
	if err != nil {
		t.Fatalf("EncodeInputs: %v", err)
	}
	got, err := chat.DecodeInputs(encoded, false)
	if err != nil {
		t.Fatalf("DecodeInputs: %v", err)
	}
	if got != in {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestBuilder_URL(t *testing.T) {
	bl := chat.NewBuilder("https://chat.example/widget", 1500, true)
	b := book.Book{Title: "T", Author: "A", Summary: "S", Introduction: "I"}

	u := bl.URL(b)
	if !strings.HasPrefix(u, "https://chat.example/widget?inputs=") {
		t.Fatalf("url = %q", u)
	}
	got, err := chat.DecodeInputs(strings.TrimPrefix(u, "https://chat.example/widget?inputs="), true)
	if err != nil {
		t.Fatalf("DecodeInputs: %v", err)
	}
	if got.BookTitle != "T" || got.BookAuthor != "A" {
		t.Errorf("inputs = %+v", got)
	}
	if got.BookContent != "S\n\nI" {
		t.Errorf("content = %q", got.BookContent)
	}
}

func TestContentOf_DescriptionFallback(t *testing.T) {
	b := book.Book{Summary: "S", Description: "legacy"}
	if got := chat.ContentOf(b); got != "S\n\nlegacy" {
		t.Errorf("ContentOf = %q", got)
	}
}

func TestCopyText_SectionsAndCaps(t *testing.T) {
	b := book.Book{
		Title:        "T",
		Author:       "A",
		Summary:      "S",
		Introduction: "I",
		Keywords:     []string{"k1", "k2"},
		Quotes: []book.Quote{
			{Title: "q1", Content: "c1"},
			{Title: "q2", Content: "c2"},
			{Title: "q3", Content: "c3"},
			{Title: "q4", Content: "c4"},
		},
	}
	got := chat.CopyText(b)

	for _, want := range []string{"【タイトル】T", "【著者】A", "【要約】\nS", "【導入・紹介】\nI", "【引用(一部)】", "【キーワード】\nk1, k2"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in copy text", want)
		}
	}
	if strings.Contains(got, "q4") {
		t.Error("quotes not capped at three")
	}
	if strings.Contains(got, "【考察(一部)】") {
		t.Error("empty reflections section rendered")
	}
}
