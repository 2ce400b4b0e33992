package types

import (
	"testing"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInternalShowKeepsUnknownsNil(t *testing.T) {
	t.Parallel()

	show := FromInternalShow(models.ShowSummary{Title: "Bleach", DubStatus: models.Subbed})
	assert.Nil(t, show.Year)
	assert.Nil(t, show.EpisodeCount)
	assert.Nil(t, show.Language)
	assert.Nil(t, show.DubEpisodes)
	assert.Nil(t, show.SubEpisodes)
	assert.False(t, show.Dubbed)
}

func TestFromInternalShowCopiesKnownValues(t *testing.T) {
	t.Parallel()

	year, count, lang := 0, 12, "dubbed"
	internal := models.ShowSummary{
		Title:        "Naruto ",
		Year:         &year,
		Language:     &lang,
		EpisodeCount: &count,
		DubStatus:    models.Dubbed,
		DubEpisodes:  &count,
	}
	show := FromInternalShow(internal)

	// a reported zero stays distinguishable from unknown
	require.NotNil(t, show.Year)
	assert.Equal(t, 0, *show.Year)
	require.NotNil(t, show.Language)
	assert.Equal(t, "dubbed", *show.Language)
	require.NotNil(t, show.DubEpisodes)
	assert.Equal(t, 12, *show.DubEpisodes)
	assert.Nil(t, show.SubEpisodes)
	assert.True(t, show.Dubbed)

	count = 99
	assert.Equal(t, 12, *show.EpisodeCount)
}

func TestFromInternalDetail(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromInternalDetail(nil))

	english := "Bleach"
	eps := []models.EpisodeRef{{Number: 1, VideoID: "v1"}, {Number: 2, VideoID: "v2"}}
	detail := FromInternalDetail(&models.ShowDetail{
		ShowSummary:    models.ShowSummary{Title: "Bleach", DubStatus: models.Subbed},
		EnglishTitle:   &english,
		Status:         models.StatusOngoing,
		Episodes:       eps,
		SubEpisodeList: eps,
	})

	require.NotNil(t, detail.EnglishTitle)
	assert.Equal(t, "Bleach", *detail.EnglishTitle)
	assert.Nil(t, detail.JapaneseTitle)
	assert.Equal(t, "Ongoing", detail.Status)
	require.Len(t, detail.Episodes, 2)
	assert.Equal(t, &Episode{Number: 2, VideoID: "v2"}, detail.Episodes[1])
	assert.Equal(t, detail.Episodes, detail.SubEpisodeList)
	assert.Nil(t, detail.DubEpisodeList)
}
