// Package types provides public type definitions for the goshiro library
package types

import (
	"github.com/alvarorichard/goshiro/internal/models"
)

// Show is a search or home page entry
type Show struct {
	// ID is the provider's identifier
	ID string
	// Slug identifies the show in URLs and is what Load expects
	Slug string
	// Title is the display name with the dub marker removed
	Title string
	// CanonicalTitle is the provider's canonical name (may be empty)
	CanonicalTitle string
	URL            string
	ImageURL       string
	// Year is nil when the provider did not report one
	Year *int
	// Type is one of "Series", "OneShot", "Movie"
	Type string
	// Language is the provider's raw language field, nil when absent
	Language *string
	// Dubbed tells whether this entry is the dubbed release
	Dubbed bool
	// EpisodeCount is nil when unknown
	EpisodeCount *int
	// DubEpisodes and SubEpisodes split EpisodeCount by release; at most one
	// is set.
	DubEpisodes *int
	SubEpisodes *int
	Source      string
}

// Episode is an episode with its playable video id
type Episode struct {
	Number  int
	VideoID string
}

// ShowDetail is a fully loaded show
type ShowDetail struct {
	Show
	EnglishTitle  *string
	JapaneseTitle *string
	Synopsis      string
	Genres        []string
	Synonyms      []string
	// Status is one of "Ongoing", "Completed", "Unknown"
	Status   string
	Episodes []*Episode
	// DubEpisodeList and SubEpisodeList hold Episodes under the show's
	// release; the other one is nil.
	DubEpisodeList []*Episode
	SubEpisodeList []*Episode
}

// HomeSection is a named home page list
type HomeSection struct {
	Name  string
	Shows []*Show
}

// Link is a playable or embeddable mirror for a video id
type Link struct {
	Source  string
	Name    string
	URL     string
	Referer string
	Quality string
	IsM3u8  bool
}

// FromInternalShow converts an internal summary to the public type
func FromInternalShow(internal models.ShowSummary) *Show {
	return &Show{
		ID:             internal.ID,
		Slug:           internal.Slug,
		Title:          internal.Title,
		CanonicalTitle: internal.CanonicalTitle,
		URL:            internal.URL,
		ImageURL:       internal.ImageURL,
		Year:           copyPtr(internal.Year),
		Type:           internal.Type.String(),
		Language:       copyPtr(internal.Language),
		Dubbed:         internal.IsDubbed(),
		EpisodeCount:   copyPtr(internal.EpisodeCount),
		DubEpisodes:    copyPtr(internal.DubEpisodes),
		SubEpisodes:    copyPtr(internal.SubEpisodes),
		Source:         internal.Source,
	}
}

// FromInternalShowList converts a slice of internal summaries
func FromInternalShowList(internal []models.ShowSummary) []*Show {
	result := make([]*Show, len(internal))
	for i, s := range internal {
		result[i] = FromInternalShow(s)
	}
	return result
}

// FromInternalDetail converts an internal show detail
func FromInternalDetail(internal *models.ShowDetail) *ShowDetail {
	if internal == nil {
		return nil
	}

	return &ShowDetail{
		Show:           *FromInternalShow(internal.ShowSummary),
		EnglishTitle:   copyPtr(internal.EnglishTitle),
		JapaneseTitle:  copyPtr(internal.JapaneseTitle),
		Synopsis:       internal.Synopsis,
		Genres:         internal.Genres,
		Synonyms:       internal.Synonyms,
		Status:         internal.Status.String(),
		Episodes:       fromInternalEpisodes(internal.Episodes),
		DubEpisodeList: fromInternalEpisodes(internal.DubEpisodeList),
		SubEpisodeList: fromInternalEpisodes(internal.SubEpisodeList),
	}
}

// fromInternalEpisodes keeps nil as nil so an absent bucket stays absent
func fromInternalEpisodes(internal []models.EpisodeRef) []*Episode {
	if internal == nil {
		return nil
	}
	result := make([]*Episode, len(internal))
	for i, ep := range internal {
		result[i] = &Episode{Number: ep.Number, VideoID: ep.VideoID}
	}
	return result
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FromInternalHome converts the home page lists
func FromInternalHome(internal []models.HomePageList) []*HomeSection {
	result := make([]*HomeSection, len(internal))
	for i, l := range internal {
		result[i] = &HomeSection{Name: l.Name, Shows: FromInternalShowList(l.Items)}
	}
	return result
}

// FromInternalLink converts an extractor link
func FromInternalLink(internal models.ExtractorLink) *Link {
	return &Link{
		Source:  internal.Source,
		Name:    internal.Name,
		URL:     internal.URL,
		Referer: internal.Referer,
		Quality: internal.Quality,
		IsM3u8:  internal.IsM3u8,
	}
}
