package cmd

import (
	"context"
	"io"

	"github.com/jimezsa/jobscrape/internal/config"
	"github.com/jimezsa/jobscrape/internal/scraper"
	"github.com/jimezsa/jobscrape/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) registry() map[string]scraper.Site {
	overrides := make(map[string]scraper.SiteConfig, len(c.Config.Sites))
	for name, site := range c.Config.Sites {
		overrides[name] = scraper.SiteConfig{SearchURL: site.SearchURL, JobURL: site.JobURL}
	}
	return scraper.Registry(overrides)
}
