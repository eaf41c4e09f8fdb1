package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/jobscrape/internal/dataset"
	"github.com/jimezsa/jobscrape/internal/models"
)

func TestDatasetShowLastRows(t *testing.T) {
	ctx, out, _ := testContext(t)
	writer := dataset.NewWriter(ctx.Config.DatasetDir)
	jobs := []models.Job{
		{ID: "1", Name: "A", Company: "X", Location: "Cebu", Link: "https://www.mynimo.com/jobs/view/1"},
		{ID: "2", Name: "B", Company: "Y", Location: "Cebu", Link: "https://www.mynimo.com/jobs/view/2"},
	}
	if err := writer.Append("mynimo", jobs); err != nil {
		t.Fatal(err)
	}

	cmd := &DatasetShowCmd{Site: "Mynimo", Format: "csv", Links: "full", Last: 1}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "2,B,Y,Cebu,") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestDatasetShowMissingFile(t *testing.T) {
	ctx, out, _ := testContext(t)
	cmd := &DatasetShowCmd{Site: "indeed", Format: "json", Links: "full"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("expected empty json array, got %q", out.String())
	}
}

func TestDatasetPathAndSites(t *testing.T) {
	ctx, out, _ := testContext(t)
	if err := (&DatasetPathCmd{Site: "ph.indeed.com"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out.String()), "scraped_indeed_jobs.csv") {
		t.Fatalf("unexpected path: %q", out.String())
	}

	out.Reset()
	if err := (&SitesCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "jobstreet") || !strings.Contains(out.String(), "not implemented") {
		t.Fatalf("unexpected sites output: %q", out.String())
	}
}

func TestDatasetCommandsHonourDatasetDir(t *testing.T) {
	ctx, out, _ := testContext(t)
	dir := filepath.Join(t.TempDir(), "custom_db")
	jobs := []models.Job{{ID: "9", Name: "QA", Company: "Z", Location: "Cebu", Link: "https://www.mynimo.com/jobs/view/9"}}
	if err := dataset.NewWriter(dir).Append("mynimo", jobs); err != nil {
		t.Fatal(err)
	}

	if err := (&DatasetPathCmd{Site: "mynimo", DatasetDir: dir}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join(dir, "scraped_mynimo_jobs.csv") {
		t.Fatalf("unexpected path: %q", got)
	}

	out.Reset()
	cmd := &DatasetShowCmd{Site: "mynimo", Format: "csv", Links: "full", DatasetDir: dir}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "9,QA,Z,Cebu,") {
		t.Fatalf("expected row from custom dir, got %q", out.String())
	}
}
