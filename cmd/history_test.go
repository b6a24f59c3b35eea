package cmd

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRuneSafe(t *testing.T) {
	problem := strings.Repeat("Cho tam giác ABC vuông tại A. ", 4)

	got := truncate(problem, 60)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a multi-byte rune: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 60 {
		t.Errorf("expected 60 runes, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestTruncateShortStringUntouched(t *testing.T) {
	if got := truncate("Tính chu vi", 60); got != "Tính chu vi" {
		t.Errorf("short string altered: %q", got)
	}
}
