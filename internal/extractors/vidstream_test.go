package extractors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alvarorichard/goshiro/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mirrorPage = `
<html>
  <body>
    <ul class="list-server-items">
      <li class="linkserver" data-video="//streamsb.net/e/abc">StreamSB</li>
      <li class="linkserver" data-video="https://cdn.example.com/hls/abc.m3u8">Multi</li>
      <li class="linkserver" data-video="">Broken</li>
      <li class="linkserver" data-video="//streamsb.net/e/abc">StreamSB again</li>
      <li class="linkserver" data-video="https://mixdrop.co/e/abc"></li>
    </ul>
  </body>
</html>`

func TestVidstreamExtractListsMirrors(t *testing.T) {
	t.Parallel()

	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/streaming.php", r.URL.Path)
		gotID = r.URL.Query().Get("id")
		_, _ = fmt.Fprint(w, mirrorPage)
	}))
	defer server.Close()

	v := NewVidstream(server.Client(), server.URL, "test-agent")

	var links []models.ExtractorLink
	err := v.Extract(context.Background(), "MTU2NjQ5", func(l models.ExtractorLink) {
		links = append(links, l)
	})
	require.NoError(t, err)
	assert.Equal(t, "MTU2NjQ5", gotID)
	require.Len(t, links, 3)

	assert.Equal(t, "https://streamsb.net/e/abc", links[0].URL)
	assert.Equal(t, "StreamSB", links[0].Name)
	assert.Equal(t, "Vidstream", links[0].Source)
	assert.Equal(t, server.URL+"/streaming.php?id=MTU2NjQ5", links[0].Referer)
	assert.False(t, links[0].IsM3u8)

	assert.True(t, links[1].IsM3u8)
	assert.Equal(t, "Mirror 5", links[2].Name)
}

func TestVidstreamExtractNoMirrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `<html><body><p>gone</p></body></html>`)
	}))
	defer server.Close()

	v := NewVidstream(server.Client(), server.URL, "")
	err := v.Extract(context.Background(), "abc", func(models.ExtractorLink) {
		t.Fatal("callback must not be called")
	})
	assert.True(t, errors.Is(err, ErrNoLinks))
}

func TestVidstreamExtractTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	v := NewVidstream(server.Client(), server.URL, "")
	v.SetTimeout(50 * time.Millisecond)
	start := time.Now()
	err := v.Extract(context.Background(), "abc", func(models.ExtractorLink) {})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestVidstreamExtractErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	v := NewVidstream(server.Client(), server.URL, "")
	err := v.Extract(context.Background(), "abc", func(models.ExtractorLink) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	err = v.Extract(context.Background(), "  ", func(models.ExtractorLink) {})
	require.Error(t, err)
}
