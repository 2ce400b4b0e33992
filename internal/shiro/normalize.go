package shiro

import (
	"sort"
	"strings"

	"github.com/alvarorichard/goshiro/internal/models"
)

const sourceName = "Shiro"

// NormalizeTitle removes the "Dubbed" marker the site bakes into names
func NormalizeTitle(name string) string {
	return strings.ReplaceAll(name, "Dubbed", "")
}

// ClassifyDub decides dub/sub from the language field, falling back to the
// slug only when language is absent.
func ClassifyDub(language *string, slug string) models.DubStatus {
	if language != nil {
		if *language == "dubbed" {
			return models.Dubbed
		}
		return models.Subbed
	}
	if strings.Contains(slug, "dubbed") {
		return models.Dubbed
	}
	return models.Subbed
}

// MapType converts the API type string. Unknown or absent types are series.
func MapType(t *string) models.TvType {
	if t == nil {
		return models.TvTypeSeries
	}
	switch *t {
	case "TV":
		return models.TvTypeSeries
	case "OVA":
		return models.TvTypeOneShot
	case "movie":
		return models.TvTypeMovie
	default:
		return models.TvTypeSeries
	}
}

// MapStatus converts the API airing status
func MapStatus(s *string) models.ShowStatus {
	if s == nil {
		return models.StatusUnknown
	}
	switch *s {
	case "current":
		return models.StatusOngoing
	case "finished":
		return models.StatusCompleted
	default:
		return models.StatusUnknown
	}
}

// BucketEpisodeCount returns (dub, sub) with count placed in the bucket
// matching status and the other left nil.
func BucketEpisodeCount(status models.DubStatus, count *int) (dub, sub *int) {
	if status == models.Dubbed {
		return count, nil
	}
	return nil, count
}

// NormalizeEpisodes dedups by episode number, sorts ascending and drops
// numbers without a video. For a duplicated number the first occurrence with
// a video wins; a number is only dropped when none of its occurrences has one.
// Running it on its own output returns the same list.
func NormalizeEpisodes(raw []models.EpisodeRef) []models.EpisodeRef {
	chosen := make(map[int]int, len(raw))
	out := make([]models.EpisodeRef, 0, len(raw))
	for _, ep := range raw {
		idx, seen := chosen[ep.Number]
		if !seen {
			chosen[ep.Number] = len(out)
			out = append(out, ep)
			continue
		}
		if !out[idx].HasVideo() && ep.HasVideo() {
			out[idx] = ep
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})

	filtered := out[:0]
	for _, ep := range out {
		if ep.HasVideo() {
			filtered = append(filtered, ep)
		}
	}
	return filtered
}

// Normalizer maps API payloads into the shared models
type Normalizer struct {
	MainURL string
	CDNURL  string
}

// ShowURL is the public page of a show
func (n Normalizer) ShowURL(slug string) string {
	return n.MainURL + "/anime/" + slug
}

// ImageURL prefixes the CDN host to an image fragment
func (n Normalizer) ImageURL(fragment string) string {
	return strings.TrimRight(n.CDNURL, "/") + "/" + fragment
}

// SlugFromURL accepts a show URL or a bare slug and returns the slug
func (n Normalizer) SlugFromURL(u string) string {
	slug := strings.ReplaceAll(u, n.MainURL+"/anime/", "")
	slug = strings.ReplaceAll(slug, n.MainURL+"/", "")
	return strings.Trim(slug, "/")
}

func (n Normalizer) summary(id, slug, name, canonical, image string, language, typ *string, year, episodes *looseString) models.ShowSummary {
	dub := ClassifyDub(language, slug)
	count := episodes.Int()
	dubCount, subCount := BucketEpisodeCount(dub, count)

	return models.ShowSummary{
		ID:             id,
		Slug:           slug,
		Title:          NormalizeTitle(name),
		CanonicalTitle: canonical,
		URL:            n.ShowURL(slug),
		ImageFragment:  image,
		ImageURL:       n.ImageURL(image),
		Year:           year.Int(),
		Type:           MapType(typ),
		Language:       language,
		EpisodeCount:   count,
		DubStatus:      dub,
		DubEpisodes:    dubCount,
		SubEpisodes:    subCount,
		Source:         sourceName,
	}
}

// SearchSummary maps a search or auto-complete entry
func (n Normalizer) SearchSummary(s searchShow) models.ShowSummary {
	return n.summary(s.ID, s.Slug, s.Name, s.CanonicalTitle, s.Image, s.Language, s.Type, s.Year, s.EpisodeCount)
}

// ListingSummary maps a home page entry
func (n Normalizer) ListingSummary(d animePageData) models.ShowSummary {
	return n.summary(d.ID, d.Slug, d.Name, deref(d.CanonicalTitle), d.Image, d.Language, d.Type, d.Year, d.EpisodeCount)
}

// Detail maps a show page, normalizing its episode list
func (n Normalizer) Detail(d animePageData) models.ShowDetail {
	summary := n.ListingSummary(d)

	raw := make([]models.EpisodeRef, 0, len(d.Episodes))
	for _, ep := range d.Episodes {
		ref := models.EpisodeRef{Number: ep.EpisodeNumber, VideoCount: len(ep.Videos)}
		if len(ep.Videos) > 0 {
			ref.VideoID = ep.Videos[0].VideoID
		}
		raw = append(raw, ref)
	}
	episodes := NormalizeEpisodes(raw)

	detail := models.ShowDetail{
		ShowSummary:   summary,
		EnglishTitle:  d.English,
		JapaneseTitle: d.Japanese,
		Synopsis:      deref(d.Synopsis),
		Genres:        nonNil(d.Genres),
		Synonyms:      nonNil(d.Synonyms),
		Status:        MapStatus(d.Status),
		Episodes:      episodes,
	}
	if summary.IsDubbed() {
		detail.DubEpisodeList = episodes
	} else {
		detail.SubEpisodeList = episodes
	}
	return detail
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
