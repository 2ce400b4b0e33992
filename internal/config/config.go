// Package config loads the goshiro settings from an optional JSON file and
// GOSHIRO_* environment variables
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alvarorichard/goshiro/internal/shiro"
	"github.com/goccy/go-json"
	"github.com/kirsle/configdir"
	"github.com/pkg/errors"
)

const appName = "goshiro"

// Duration is a time.Duration read from a string like "90s" or a number of seconds
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := parseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return errors.Wrap(err, "duration must be a string or a number of seconds")
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", s)
	}
	return d, nil
}

// Config is the file and environment level configuration
type Config struct {
	MainURL      string `json:"mainUrl"`
	APIURL       string `json:"apiUrl"`
	CDNURL       string `json:"cdnUrl"`
	VidstreamURL string `json:"vidstreamUrl"`
	UserAgent    string `json:"userAgent"`

	ListingTimeout Duration `json:"listingTimeout"`
	DetailTimeout  Duration `json:"detailTimeout"`
	SearchTimeout  Duration `json:"searchTimeout"`
	ScrapeTimeout  Duration `json:"scrapeTimeout"`

	// Addr is the listen address of the HTTP surface
	Addr string `json:"addr"`
	// CacheTTL is how long the HTTP surface keeps home and show responses
	CacheTTL Duration `json:"cacheTtl"`
	Debug    bool     `json:"debug"`
}

// Default returns the production hosts with the default listen address
func Default() Config {
	sc := shiro.DefaultConfig()
	return Config{
		MainURL:        sc.MainURL,
		APIURL:         sc.APIURL,
		CDNURL:         sc.CDNURL,
		VidstreamURL:   sc.VidstreamURL,
		UserAgent:      sc.UserAgent,
		ListingTimeout: Duration(sc.ListingTimeout),
		DetailTimeout:  Duration(sc.DetailTimeout),
		SearchTimeout:  Duration(sc.SearchTimeout),
		Addr:           ":3000",
		CacheTTL:       Duration(5 * time.Minute),
	}
}

// DefaultPath is the config file looked up when no path is given
func DefaultPath() string {
	return filepath.Join(configdir.LocalConfig(appName), "config.json")
}

// Load reads path (or DefaultPath when empty) over the defaults and applies
// the environment. A missing default file is not an error; a missing
// explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return cfg, errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"GOSHIRO_MAIN_URL":      &c.MainURL,
		"GOSHIRO_API_URL":       &c.APIURL,
		"GOSHIRO_CDN_URL":       &c.CDNURL,
		"GOSHIRO_VIDSTREAM_URL": &c.VidstreamURL,
		"GOSHIRO_USER_AGENT":    &c.UserAgent,
		"GOSHIRO_ADDR":          &c.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*Duration{
		"GOSHIRO_LISTING_TIMEOUT": &c.ListingTimeout,
		"GOSHIRO_DETAIL_TIMEOUT":  &c.DetailTimeout,
		"GOSHIRO_SEARCH_TIMEOUT":  &c.SearchTimeout,
		"GOSHIRO_SCRAPE_TIMEOUT":  &c.ScrapeTimeout,
		"GOSHIRO_CACHE_TTL":       &c.CacheTTL,
	}
	for key, dst := range durations {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return errors.Wrap(err, key)
		}
		*dst = Duration(d)
	}

	if v, ok := lookup("GOSHIRO_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "GOSHIRO_DEBUG")
		}
		c.Debug = debug
	}
	return nil
}

// Shiro returns the provider configuration
func (c Config) Shiro() shiro.Config {
	return shiro.Config{
		MainURL:        c.MainURL,
		APIURL:         c.APIURL,
		CDNURL:         c.CDNURL,
		VidstreamURL:   c.VidstreamURL,
		UserAgent:      c.UserAgent,
		ListingTimeout: time.Duration(c.ListingTimeout),
		DetailTimeout:  time.Duration(c.DetailTimeout),
		SearchTimeout:  time.Duration(c.SearchTimeout),
		ScrapeTimeout:  time.Duration(c.ScrapeTimeout),
	}
}
