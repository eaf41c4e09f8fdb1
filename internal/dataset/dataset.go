// Package dataset stores scraped jobs in append-only per-site CSV files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobscrape/internal/models"
)

// Header is the fixed column order of every dataset file.
var Header = []string{"job_id", "job_name", "company_name", "job_location", "job_link"}

var ErrBadHeader = errors.New("unexpected dataset header")

// FileName returns the dataset file name for a site.
func FileName(site string) string {
	return fmt.Sprintf("scraped_%s_jobs.csv", site)
}

// Writer appends jobs to the dataset files under Dir.
// It assumes a single writer per file.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

func (w *Writer) Path(site string) string {
	return filepath.Join(w.Dir, FileName(site))
}

// Append writes jobs as rows of the site's dataset file. The header is
// written only when the file is missing or empty. No jobs means no write.
func (w *Writer) Append(site string, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	if strings.TrimSpace(site) == "" {
		return fmt.Errorf("site is required")
	}

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	path := w.Path(site)
	fresh, err := needsHeader(path)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	if err := writeRows(file, jobs, fresh); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func needsHeader(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

func writeRows(w io.Writer, jobs []models.Job, header bool) error {
	writer := csv.NewWriter(w)
	if header {
		if err := writer.Write(Header); err != nil {
			return err
		}
	}
	for _, job := range jobs {
		if err := writer.Write(Row(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Row returns the CSV fields of a job in Header order.
func Row(job models.Job) []string {
	return []string{job.ID, job.Name, job.Company, job.Location, job.Link}
}

// Read parses a dataset file back into jobs.
func Read(path string) ([]models.Job, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(Header)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []models.Job{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for i, column := range Header {
		if header[i] != column {
			return nil, fmt.Errorf("%s: %w: column %d is %q, want %q", path, ErrBadHeader, i+1, header[i], column)
		}
	}

	jobs := []models.Job{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		jobs = append(jobs, models.Job{
			ID:       record[0],
			Name:     record[1],
			Company:  record[2],
			Location: record[3],
			Link:     record[4],
		})
	}
	return jobs, nil
}

// ReadAllowMissing reads a dataset and treats a missing file as empty.
func ReadAllowMissing(path string) ([]models.Job, error) {
	jobs, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Job{}, nil
		}
		return nil, err
	}
	return jobs, nil
}
