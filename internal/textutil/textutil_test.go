package textutil

import (
	"strings"
	"testing"
)

func TestNormalize_StripsTagsAndCollapsesWhitespace(t *testing.T) {
	in := "<p>AI adoption   is <b>accelerating</b></p>\n\n<br/> across teams"
	want := "AI adoption is accelerating across teams"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalize_DecodesEntities(t *testing.T) {
	in := "R&#38;D spending &#8212; up again &amp; rising, 5 &lt; 10 &gt; 2"
	got := Normalize(in)

	for _, entity := range []string{"&#38;", "&#8212;", "&amp;", "&lt;", "&gt;"} {
		if strings.Contains(got, entity) {
			t.Errorf("entity %q survived normalization: %q", entity, got)
		}
	}
	if !strings.Contains(got, "R&D") {
		t.Errorf("expected decoded ampersand in %q", got)
	}
}

func TestNormalize_DoubleEncodedEntities(t *testing.T) {
	got := Normalize("data silos &amp;#8212; still a problem")
	if strings.Contains(got, "&") || strings.Contains(got, "#8212") {
		t.Errorf("double-encoded dash not decoded: %q", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text already",
		"<div>tags &amp; entities&#8230;</div>",
		"  spaced   out\t\ttext  ",
		"quotes &#8220;inside&#8221; text",
		"5 &lt; 10 &gt; 2",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want \"\"", got)
	}
	if got := Normalize("   \n\t  "); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want \"\"", got)
	}
}

func TestTruncateAtSentence_ShortInputUnchanged(t *testing.T) {
	in := "Short summary."
	if got := TruncateAtSentence(in, 100); got != in {
		t.Errorf("TruncateAtSentence(%q, 100) = %q, want unchanged", in, got)
	}
}

func TestTruncateAtSentence_EndsOnBoundary(t *testing.T) {
	in := strings.Repeat("This is a full sentence. ", 20)
	got := TruncateAtSentence(in, 120)
	if len(got) > 120 {
		t.Errorf("truncated text too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected sentence boundary ending, got %q", got)
	}
}

func TestTruncateAtSentence_NoBoundaryFallsBackToWordCut(t *testing.T) {
	in := strings.Repeat("word ", 100)
	got := TruncateAtSentence(in, 50)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}
