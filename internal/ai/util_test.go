package ai

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanReply_StripsThinkBlocks(t *testing.T) {
	got := cleanReply("<think>internal reasoning\nmore</think>Hmph, baiklah.")
	if got != "Hmph, baiklah." {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCleanReply_StripsWrappingQuotes(t *testing.T) {
	if got := cleanReply(`"Jangan ge-er!"`); got != "Jangan ge-er!" {
		t.Fatalf("unexpected: %q", got)
	}
	// Inner quotes stay.
	if got := cleanReply(`dia bilang "baka" padaku`); got != `dia bilang "baka" padaku` {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCleanReply_CapsLength(t *testing.T) {
	got := cleanReply(strings.Repeat("a", 5000))
	if len(got) > 2820 {
		t.Fatalf("reply not capped: %d", len(got))
	}
	if !strings.HasSuffix(got, "[truncated]") {
		t.Fatal("missing truncation marker")
	}
}

func TestCleanReply_CapsAtRuneBoundary(t *testing.T) {
	// 3-byte runes; 2800 is not a multiple of 3, so a byte cut would land
	// mid-character.
	got := cleanReply(strings.Repeat("あ", 1200))
	if !utf8.ValidString(got) {
		t.Fatal("truncated reply is not valid UTF-8")
	}
	if !strings.HasSuffix(got, "[truncated]") {
		t.Fatal("missing truncation marker")
	}
}

func TestRedactKey(t *testing.T) {
	if got := RedactKey("sk-or-v1-abcdef"); got != "sk-or..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := RedactKey(""); got != "none" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := RedactKey("ab"); got != "ab..." {
		t.Fatalf("unexpected: %q", got)
	}
}
