package shiro

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// looseString accepts a JSON string or number. The API is not consistent
// about quoting counts and years.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// Int parses the value; nil when absent or not an integer
func (s *looseString) Int() *int {
	if s == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(*s)))
	if err != nil {
		return nil
	}
	return &n
}

type searchShow struct {
	Image          string       `json:"image"`
	ID             string       `json:"_id"`
	Slug           string       `json:"slug"`
	Name           string       `json:"name"`
	EpisodeCount   *looseString `json:"episodeCount"`
	Language       *string      `json:"language"`
	Type           *string      `json:"type"`
	Year           *looseString `json:"year"`
	CanonicalTitle string       `json:"canonicalTitle"`
	English        *string      `json:"english"`
}

type searchResponse struct {
	Data   []searchShow `json:"data"`
	Status string       `json:"status"`
}

type fullSearchResponse struct {
	Data struct {
		Nav struct {
			CurrentPage struct {
				Items []searchShow `json:"items"`
			} `json:"currentPage"`
		} `json:"nav"`
	} `json:"data"`
	Status string `json:"status"`
}

type videoPayload struct {
	VideoID string `json:"video_id"`
	Host    string `json:"host"`
}

type episodePayload struct {
	AnimeSlug     string         `json:"anime_slug"`
	Create        string         `json:"create"`
	DayOfTheWeek  string         `json:"dayOfTheWeek"`
	EpisodeNumber int            `json:"episode_number"`
	Slug          string         `json:"slug"`
	Update        string         `json:"update"`
	ID            string         `json:"_id"`
	Videos        []videoPayload `json:"videos"`
}

type animePageData struct {
	ID             string           `json:"_id"`
	Banner         *string          `json:"banner"`
	CanonicalTitle *string          `json:"canonicalTitle"`
	EpisodeCount   *looseString     `json:"episodeCount"`
	Genres         []string         `json:"genres"`
	Image          string           `json:"image"`
	Japanese       *string          `json:"japanese"`
	English        *string          `json:"english"`
	Language       *string          `json:"language"`
	Name           string           `json:"name"`
	Slug           string           `json:"slug"`
	Synopsis       *string          `json:"synopsis"`
	Type           *string          `json:"type"`
	Views          *int             `json:"views"`
	Year           *looseString     `json:"year"`
	Episodes       []episodePayload `json:"episodes"`
	Synonyms       []string         `json:"synonyms"`
	Status         *string          `json:"status"`
	Schedule       *string          `json:"schedule"`
}

type animePage struct {
	Data   animePageData `json:"data"`
	Status string        `json:"status"`
}

type homePage struct {
	Status string `json:"status"`
	Data   struct {
		TrendingAnimes []animePageData  `json:"trending_animes"`
		OngoingAnimes  []animePageData  `json:"ongoing_animes"`
		LatestAnimes   []animePageData  `json:"latest_animes"`
		LatestEpisodes []episodePayload `json:"latest_episodes"`
	} `json:"data"`
	Random *animePage `json:"random"`
}
