package types

import (
	"fmt"
	"strings"

	"github.com/alvarorichard/goshiro/internal/scraper"
)

// Source represents a content provider
type Source int

const (
	// SourceShiro represents the Shiro provider
	SourceShiro Source = iota
)

// String returns the string representation of the source
func (s Source) String() string {
	switch s {
	case SourceShiro:
		return "Shiro"
	default:
		return "Unknown"
	}
}

// ToScraperType converts the public Source type to internal ScraperType
func (s Source) ToScraperType() scraper.ScraperType {
	switch s {
	case SourceShiro:
		return scraper.ShiroType
	default:
		return scraper.ShiroType
	}
}

// ParseSource parses a string into a Source type
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shiro", "shiro.is":
		return SourceShiro, nil
	default:
		return SourceShiro, fmt.Errorf("unknown source: %s", s)
	}
}
