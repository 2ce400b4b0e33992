package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alvarorichard/goshiro/internal/config"
	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/alvarorichard/goshiro/internal/server"
	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/alvarorichard/goshiro/internal/util"
	"github.com/alvarorichard/goshiro/internal/version"
	"github.com/charmbracelet/huh/spinner"
	"github.com/goccy/go-json"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// session is what the commands share once the global flags are parsed
type session struct {
	cfg      config.Config
	provider *shiro.Provider
	out      io.Writer
	asJSON   bool
}

func newApp(out io.Writer) *cli.App {
	s := &session{out: out}

	return &cli.App{
		Name:    "goshiro",
		Usage:   "browse the Shiro anime catalog",
		Version: version.Version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging", EnvVars: []string{"GOSHIRO_DEBUG"}},
			&cli.StringFlag{Name: "config", Usage: "config file (default " + config.DefaultPath() + ")"},
			&cli.BoolFlag{Name: "json", Usage: "print results as JSON"},
		},
		Before: s.setup,
		Commands: []*cli.Command{
			{
				Name:   "home",
				Usage:  "list the Trending, Ongoing and Latest sections",
				Action: s.home,
			},
			{
				Name:      "search",
				Usage:     "full search",
				ArgsUsage: "<query>",
				Action:    s.search,
			},
			{
				Name:      "quick",
				Usage:     "auto-complete search",
				ArgsUsage: "<query>",
				Action:    s.quick,
			},
			{
				Name:      "load",
				Usage:     "show details and episodes",
				ArgsUsage: "<slug|url>",
				Action:    s.load,
			},
			{
				Name:      "links",
				Usage:     "list the mirrors of an episode video",
				ArgsUsage: "<videoID>",
				Action:    s.links,
			},
			{
				Name:      "pick",
				Usage:     "search, pick a result interactively and load it",
				ArgsUsage: "<query>",
				Action:    s.pick,
			},
			{
				Name:  "serve",
				Usage: "serve the JSON API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address"},
				},
				Action: s.serve,
			},
		},
	}
}

func (s *session) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	util.SetDebugMode(cfg.Debug)
	util.InitLogger()
	util.Debug("Configuration loaded", "api", cfg.APIURL, "addr", cfg.Addr)

	s.cfg = cfg
	s.asJSON = c.Bool("json")
	s.provider = shiro.NewProvider(cfg.Shiro(), shiro.ProviderOptions{})
	return nil
}

func argQuery(c *cli.Context, what string) (string, error) {
	q := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if q == "" {
		return "", errors.Errorf("missing %s", what)
	}
	return q, nil
}

var (
	isTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }

	startSpinner = func(title string, action func()) error {
		return spinner.New().
			Title(title).
			Type(spinner.Dots).
			Action(action).
			Run()
	}
)

// run executes fn under a spinner when stdout is a terminal. fn always runs
// exactly once: if the spinner fails before starting it, fn runs without it.
func (s *session) run(title string, fn func()) {
	if s.asJSON || !isTerminal() {
		fn()
		return
	}

	ran := false
	err := startSpinner(title, func() {
		ran = true
		fn()
	})
	if err != nil {
		util.Debug("Spinner unavailable", "error", err)
		if !ran {
			fn()
		}
	}
}

func (s *session) printJSON(v interface{}) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *session) home(c *cli.Context) error {
	var lists []models.HomePageList
	var err error
	s.run("Loading home page...", func() {
		lists, err = s.provider.MainPage(c.Context)
	})
	if err != nil {
		return err
	}
	if s.asJSON {
		return s.printJSON(lists)
	}
	renderHome(s.out, lists)
	return nil
}

func (s *session) search(c *cli.Context) error {
	return s.searchWith(c, "Searching...", s.provider.Search)
}

func (s *session) quick(c *cli.Context) error {
	return s.searchWith(c, "Searching...", s.provider.QuickSearch)
}

func (s *session) searchWith(c *cli.Context, title string, fn func(context.Context, string) ([]models.ShowSummary, error)) error {
	q, err := argQuery(c, "query")
	if err != nil {
		return err
	}
	var results []models.ShowSummary
	s.run(title, func() {
		results, err = fn(c.Context, q)
	})
	if err != nil {
		return err
	}
	if s.asJSON {
		return s.printJSON(results)
	}
	renderSummaries(s.out, results)
	return nil
}

func (s *session) loadShow(c *cli.Context, slug string) error {
	var detail *models.ShowDetail
	var err error
	s.run("Loading show...", func() {
		detail, err = s.provider.Load(c.Context, slug)
	})
	if err != nil {
		return err
	}
	if s.asJSON {
		return s.printJSON(detail)
	}
	renderDetail(s.out, detail)
	return nil
}

func (s *session) load(c *cli.Context) error {
	slug, err := argQuery(c, "slug or url")
	if err != nil {
		return err
	}
	return s.loadShow(c, slug)
}

func (s *session) links(c *cli.Context) error {
	videoID, err := argQuery(c, "video id")
	if err != nil {
		return err
	}
	links := []models.ExtractorLink{}
	s.run("Resolving mirrors...", func() {
		err = s.provider.LoadLinks(c.Context, videoID, func(l models.ExtractorLink) {
			links = append(links, l)
		})
	})
	if err != nil {
		return err
	}
	if s.asJSON {
		return s.printJSON(links)
	}
	renderLinks(s.out, links)
	return nil
}

func (s *session) pick(c *cli.Context) error {
	q, err := argQuery(c, "query")
	if err != nil {
		return err
	}
	var results []models.ShowSummary
	s.run("Searching...", func() {
		results, err = s.provider.QuickSearch(c.Context, q)
	})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errors.Errorf("no show found for %q", q)
	}

	idx, err := fuzzyfinder.Find(
		results,
		func(i int) string {
			return summaryLine(results[i])
		},
	)
	if err != nil {
		return errors.Wrap(err, "failed to select show with go-fuzzyfinder")
	}
	return s.loadShow(c, results[idx].Slug)
}

func (s *session) serve(c *cli.Context) error {
	addr := s.cfg.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.Info("Serving API", "addr", addr, "api", s.cfg.APIURL, "cacheTTL", time.Duration(s.cfg.CacheTTL))
	err := server.Serve(ctx, server.ServerConfig{
		ShowStartBanner: true,
		HttpAddr:        addr,
		App: server.AppConfig{
			CacheTTL:  time.Duration(s.cfg.CacheTTL),
			AccessLog: util.IsDebug,
		},
	}, s.provider)
	if err != nil {
		return errors.Wrap(err, "server stopped")
	}
	util.Info("Server stopped")
	return nil
}
