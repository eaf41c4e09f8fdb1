package ui

import (
	"bytes"
	"testing"
)

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"always":  ColorAlways,
		" NEVER ": ColorNever,
		"auto":    ColorAuto,
		"bogus":   ColorAuto,
		"":        ColorAuto,
	}
	for input, want := range cases {
		if got := NormalizeColorMode(input); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMessagesGoToTheirStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Infof("scraped %d pages\n", 2)
	u.Warnf("site %q not implemented", "jobstreet")
	u.Errorf("boom")

	if out.String() != "scraped 2 pages\n" {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
	if errOut.String() != "site \"jobstreet\" not implemented\nboom\n" {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
	if u.LinkText("https://x") != "https://x" {
		t.Fatalf("links should be plain when color is off")
	}
}
