package browser

import (
	"testing"

	"github.com/jimezsa/jobscrape/internal/models"
)

func TestExecPath(t *testing.T) {
	t.Setenv("CHROME_PATH", "/opt/chrome/chrome")

	if got := ExecPath(" /usr/bin/chromium "); got != "/usr/bin/chromium" {
		t.Fatalf("configured path should win, got %q", got)
	}
	if got := ExecPath(""); got != "/opt/chrome/chrome" {
		t.Fatalf("expected CHROME_PATH fallback, got %q", got)
	}

	t.Setenv("CHROME_PATH", "")
	if got := ExecPath(""); got != "" {
		t.Fatalf("expected empty path, got %q", got)
	}
}

func TestAllocatorOptions(t *testing.T) {
	t.Setenv("CHROME_PATH", "")
	base := len(allocatorOptions(models.FetchOptions{Headless: true}))

	withExtras := allocatorOptions(models.FetchOptions{
		Headless:   true,
		UserAgent:  "jobscrape-test",
		ChromePath: "/usr/bin/chromium",
	})
	if len(withExtras) != base+2 {
		t.Fatalf("expected user agent and exec path options, got %d vs base %d", len(withExtras), base)
	}
}
