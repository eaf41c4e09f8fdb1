package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jimezsa/jobscrape/internal/browser"
	"github.com/jimezsa/jobscrape/internal/config"
	"github.com/jimezsa/jobscrape/internal/dataset"
	"github.com/jimezsa/jobscrape/internal/models"
	"github.com/jimezsa/jobscrape/internal/network"
	"github.com/jimezsa/jobscrape/internal/scraper"
	"github.com/rs/zerolog"
)

type ScrapeCmd struct {
	SkillName string `name:"skill-name" required:"" help:"Skill or job title to search for."`
	Location  string `required:"" help:"Job location."`
	Site      string `help:"Job board to scrape (indeed, mynimo)." default:"indeed"`
	NumPages  int    `name:"num-pages" required:"" help:"Number of result pages to scrape, starting at the first."`
	ScrapeOptions
}

type ScrapeOptions struct {
	Fetcher     string        `help:"Page fetcher: browser (headless Chrome) or http." enum:",browser,http" default:""`
	PageTimeout time.Duration `help:"Per-page load timeout, e.g. 45s. Defaults to the config value."`
	Retries     int           `help:"Extra fetch attempts per page; negative uses the config value." default:"-1"`
	Headed      bool          `help:"Show the browser window."`
	DatasetDir  string        `help:"Directory for dataset files. Defaults to the config value."`
	Proxies     string        `help:"Comma-separated proxy URLs for the http fetcher." env:"JOBSCRAPE_PROXIES"`
}

func (s *ScrapeCmd) Validate() error {
	if strings.TrimSpace(s.SkillName) == "" {
		return errors.New("--skill-name must not be empty")
	}
	if strings.TrimSpace(s.Location) == "" {
		return errors.New("--location must not be empty")
	}
	if s.NumPages < 1 {
		return fmt.Errorf("--num-pages must be at least 1, got %d", s.NumPages)
	}
	return nil
}

func (s *ScrapeCmd) Run(ctx *Context) error {
	return runScrape(ctx, s, openFetcher)
}

// runSettings is the configuration of one scrape after flags are applied over the config file.
type runSettings struct {
	fetcher    string
	timeout    time.Duration
	retries    int
	datasetDir string
	proxies    string
	fetch      models.FetchOptions
}

func (s *ScrapeCmd) settings(cfg config.Config) runSettings {
	settings := runSettings{
		fetcher:    firstNonEmpty(s.Fetcher, cfg.Fetcher),
		timeout:    cfg.PageTimeout(),
		retries:    cfg.FetchRetries,
		datasetDir: firstNonEmpty(s.DatasetDir, cfg.DatasetDir),
		proxies:    s.Proxies,
		fetch: models.FetchOptions{
			Headless:   cfg.Headless && !s.Headed,
			ChromePath: cfg.ChromePath,
			UserAgent:  cfg.UserAgent,
			Settle:     cfg.Settle(),
		},
	}
	if s.PageTimeout > 0 {
		settings.timeout = s.PageTimeout
	}
	if s.Retries >= 0 {
		settings.retries = s.Retries
	}
	return settings
}

type fetcherFactory func(ctx context.Context, settings runSettings, logger zerolog.Logger) (scraper.Fetcher, func() error, error)

func openFetcher(ctx context.Context, settings runSettings, logger zerolog.Logger) (scraper.Fetcher, func() error, error) {
	if settings.fetcher == config.FetcherHTTP {
		proxies, err := config.LoadProxies(settings.proxies)
		if err != nil {
			return nil, nil, err
		}
		var rotator *network.Rotator
		if len(proxies) > 0 {
			rotator, err = network.NewRotator(proxies, 10*time.Minute)
			if err != nil {
				return nil, nil, err
			}
			logger.Debug().Int("proxies", rotator.Len()).Msg("proxy rotation enabled")
		}
		client, err := network.NewClient(rotator, settings.fetch.UserAgent)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	}

	chrome, err := browser.New(ctx, settings.fetch, logger)
	if err != nil {
		return nil, nil, err
	}
	return chrome, chrome.Close, nil
}

func runScrape(ctx *Context, s *ScrapeCmd, open fetcherFactory) error {
	settings := s.settings(ctx.Config)

	cfg := ctx.Config
	cfg.DatasetDir = settings.datasetDir
	if err := config.EnsureDatasetDir(cfg); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	site, err := scraper.Lookup(ctx.registry(), s.Site)
	if errors.Is(err, scraper.ErrNotImplemented) || errors.Is(err, scraper.ErrUnknownSite) {
		ctx.UI.Warnf("Scraping %q is not implemented. Nothing was scraped; run `jobscrape sites` for the supported sites.", s.Site)
		return nil
	}
	if err != nil {
		return err
	}

	logger := ctx.Logger.With().Str("run_id", uuid.NewString()).Logger()
	runCtx := ctx.context()

	fetcher, closeFetcher, err := open(runCtx, settings, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFetcher(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn().Err(err).Msg("closing fetcher")
		}
	}()

	writer := dataset.NewWriter(settings.datasetDir)
	runner := &scraper.Runner{
		Fetcher:     fetcher,
		Dataset:     writer,
		Logger:      logger,
		PageTimeout: settings.timeout,
		Retries:     settings.retries,
	}

	summary, err := runner.Run(runCtx, site, strings.TrimSpace(s.SkillName), strings.TrimSpace(s.Location), s.NumPages)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("scrape interrupted after %d pages: %w", summary.Pages, err)
		}
		return err
	}

	return printScrapeSummary(ctx, site.Name(), writer.Path(site.Name()), summary)
}

func printScrapeSummary(ctx *Context, site string, path string, summary scraper.Summary) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Site    string `json:"site"`
			Dataset string `json:"dataset"`
			scraper.Summary
		}{site, path, summary})
	}

	if summary.Written > 0 {
		ctx.UI.Successf("%s: %d jobs appended to %s", site, summary.Written, path)
	} else {
		ctx.UI.Infof("%s: no jobs appended", site)
	}
	if summary.EmptyPages > 0 || summary.FailedPages > 0 || summary.Skipped > 0 {
		ctx.UI.Warnf("%s: %d empty pages, %d failed pages, %d cards skipped", site, summary.EmptyPages, summary.FailedPages, summary.Skipped)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
