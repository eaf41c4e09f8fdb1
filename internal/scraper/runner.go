package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jimezsa/jobscrape/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Runner drives fetch, extract and append for each requested page, strictly in order.
type Runner struct {
	Fetcher     Fetcher
	Dataset     Appender
	Logger      zerolog.Logger
	PageTimeout time.Duration
	// Retries is the number of extra fetch attempts before a page is skipped.
	// Negative values mean a single attempt.
	Retries int
}

// Summary counts what a run did.
type Summary struct {
	Pages       int `json:"pages"`
	EmptyPages  int `json:"empty_pages"`
	FailedPages int `json:"failed_pages"`
	Written     int `json:"written"`
	Malformed   int `json:"malformed"`
	Skipped     int `json:"skipped"`
}

// Run scrapes pages 0..pages-1 of site. Cancellation is honoured before each fetch.
// Fetch failures and empty pages are logged and skipped; dataset errors end the run.
func (r *Runner) Run(ctx context.Context, site Site, skill, location string, pages int) (Summary, error) {
	var summary Summary
	logger := r.Logger.With().Str("site", site.Name()).Logger()

	for page := 0; page < pages; page++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		params := models.SearchParams{Skill: skill, Location: location, Page: page}
		pageLog := logger.With().Int("page", page+1).Logger()
		pageLog.Info().Msgf("Scraping %s for %s in %s [Page #%d]",
			titleCase(site.Name()), titleCase(skill), titleCase(location), page+1)

		markup, err := r.fetch(ctx, pageLog, site.SearchURL(params))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			summary.FailedPages++
			pageLog.Error().Err(err).Msg("Page could not be fetched, skipping.")
			continue
		}
		summary.Pages++

		result, err := Extract(site, markup)
		if errors.Is(err, ErrNoResults) {
			summary.EmptyPages++
			pageLog.Error().Msg("No jobs found.")
			continue
		}
		if err != nil {
			summary.FailedPages++
			pageLog.Error().Err(err).Msg("Page could not be parsed, skipping.")
			continue
		}

		pageLog.Info().Int("cards", result.Cards).Msg("Job found. Scraping attributes...")
		summary.Malformed += result.Malformed
		summary.Skipped += len(result.Skipped)
		if result.Malformed > 0 {
			pageLog.Debug().Int("malformed", result.Malformed).Msg("Skipped cards without detail wrapper.")
		}
		for _, skipErr := range result.Skipped {
			pageLog.Warn().Err(skipErr).Msg("Skipping card.")
		}

		if len(result.Jobs) == 0 {
			continue
		}
		for _, job := range result.Jobs {
			pageLog.Info().Str("job_id", job.ID).Msgf("Adding %s by %s to dataset...", job.ID, job.Company)
		}
		if err := r.Dataset.Append(site.Name(), result.Jobs); err != nil {
			return summary, fmt.Errorf("append %s dataset: %w", site.Name(), err)
		}
		summary.Written += len(result.Jobs)
	}

	return summary, nil
}

func (r *Runner) fetch(ctx context.Context, logger zerolog.Logger, target string) (string, error) {
	var lastErr error
	attempts := max(r.Retries, 0) + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			logger.Warn().Err(lastErr).Int("attempt", attempt+1).Msg("Retrying page fetch.")
		}
		markup, err := r.fetchOnce(ctx, target)
		if err == nil {
			return markup, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (r *Runner) fetchOnce(ctx context.Context, target string) (string, error) {
	fetchCtx := ctx
	cancel := func() {}
	if r.PageTimeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, r.PageTimeout)
	}
	defer cancel()

	markup, err := r.Fetcher.Fetch(fetchCtx, target)
	if err == nil {
		return markup, nil
	}
	if ctx.Err() == nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded)) {
		return "", fmt.Errorf("%w: %s after %s", ErrFetchTimeout, target, r.PageTimeout)
	}
	return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, target, err)
}

func titleCase(value string) string {
	return cases.Title(language.English).String(value)
}
