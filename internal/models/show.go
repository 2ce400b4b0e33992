// Package models contains the canonical show and episode records shared by
// providers, the public library and the HTTP surface
package models

// TvType is the kind of release a show is
type TvType int

const (
	TvTypeUnknown TvType = iota
	TvTypeSeries
	TvTypeOneShot
	TvTypeMovie
)

func (t TvType) String() string {
	switch t {
	case TvTypeSeries:
		return "Series"
	case TvTypeOneShot:
		return "OneShot"
	case TvTypeMovie:
		return "Movie"
	default:
		return "Unknown"
	}
}

// MarshalText lets the enum travel as its name in JSON
func (t TvType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TvType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Series":
		*t = TvTypeSeries
	case "OneShot":
		*t = TvTypeOneShot
	case "Movie":
		*t = TvTypeMovie
	default:
		*t = TvTypeUnknown
	}
	return nil
}

// ShowStatus is the airing state of a show
type ShowStatus int

const (
	StatusUnknown ShowStatus = iota
	StatusOngoing
	StatusCompleted
)

func (s ShowStatus) String() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s ShowStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ShowStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Ongoing":
		*s = StatusOngoing
	case "Completed":
		*s = StatusCompleted
	default:
		*s = StatusUnknown
	}
	return nil
}

// DubStatus tells whether a catalog entry is the dubbed or the subtitled release
type DubStatus int

const (
	Subbed DubStatus = iota
	Dubbed
)

func (d DubStatus) String() string {
	if d == Dubbed {
		return "Dubbed"
	}
	return "Subbed"
}

func (d DubStatus) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *DubStatus) UnmarshalText(text []byte) error {
	if string(text) == "Dubbed" {
		*d = Dubbed
	} else {
		*d = Subbed
	}
	return nil
}

// ShowSummary is a search or listing entry
type ShowSummary struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	CanonicalTitle string    `json:"canonicalTitle"`
	URL            string    `json:"url"`
	ImageFragment  string    `json:"imageFragment"`
	ImageURL       string    `json:"imageUrl"`
	Year           *int      `json:"year,omitempty"`
	Type           TvType    `json:"type"`
	Language       *string   `json:"language,omitempty"`
	EpisodeCount   *int      `json:"episodeCount,omitempty"`
	DubStatus      DubStatus `json:"dubStatus"`
	// Exactly one of DubEpisodes and SubEpisodes carries EpisodeCount,
	// picked by DubStatus. Both are nil when the count is unknown.
	DubEpisodes *int   `json:"dubEpisodes,omitempty"`
	SubEpisodes *int   `json:"subEpisodes,omitempty"`
	Source      string `json:"source"`
}

// IsDubbed reports whether the entry is the dubbed release
func (s ShowSummary) IsDubbed() bool {
	return s.DubStatus == Dubbed
}

// EpisodeRef points at the first video of an episode. VideoID is empty
// when the source listed no video for the episode.
type EpisodeRef struct {
	Number  int    `json:"number"`
	VideoID string `json:"videoId,omitempty"`
	// VideoCount is how many videos the provider listed for the episode
	VideoCount int `json:"videoCount,omitempty"`
}

// HasVideo reports whether the provider listed any video for the episode.
// An entry whose first video carries an empty id still counts.
func (e EpisodeRef) HasVideo() bool {
	return e.VideoID != "" || e.VideoCount > 0
}

// ShowDetail is the full load response for a show
type ShowDetail struct {
	ShowSummary
	EnglishTitle  *string      `json:"englishTitle,omitempty"`
	JapaneseTitle *string      `json:"japaneseTitle,omitempty"`
	Synopsis      string       `json:"synopsis"`
	Genres        []string     `json:"genres"`
	Synonyms      []string     `json:"synonyms"`
	Status        ShowStatus   `json:"status"`
	Episodes      []EpisodeRef `json:"episodes"`
	// Only the list matching DubStatus is populated
	DubEpisodeList []EpisodeRef `json:"dubEpisodeList,omitempty"`
	SubEpisodeList []EpisodeRef `json:"subEpisodeList,omitempty"`
}

// HomePageList is a named home page section
type HomePageList struct {
	Name  string        `json:"name"`
	Items []ShowSummary `json:"items"`
}

// ExtractorLink is a playable (or embeddable) link found for a video id
type ExtractorLink struct {
	Source  string `json:"source"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Referer string `json:"referer"`
	Quality string `json:"quality"`
	IsM3u8  bool   `json:"isM3u8"`
}
