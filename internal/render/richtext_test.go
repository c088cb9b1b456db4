package render

import (
	"strings"
	"testing"
)

func TestRichTextMarkdown(t *testing.T) {
	out := string(RichText("# Heading\n\nSome **bold** text."))
	if !strings.Contains(out, "<h1>Heading</h1>") {
		t.Fatalf("expected heading, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("expected bold, got %q", out)
	}
}

func TestRichTextHTMLPassThrough(t *testing.T) {
	out := string(RichText("<p>Already <em>HTML</em></p>"))
	if !strings.Contains(out, "<em>HTML</em>") {
		t.Fatalf("expected em preserved, got %q", out)
	}
}

func TestRichTextStripsScripts(t *testing.T) {
	out := string(RichText(`<p>hi</p><script>alert(1)</script>`))
	if strings.Contains(out, "script") {
		t.Fatalf("script tag survived sanitization: %q", out)
	}
}

func TestRichTextEmpty(t *testing.T) {
	if RichText("   ") != "" {
		t.Fatal("expected empty output for whitespace input")
	}
}
