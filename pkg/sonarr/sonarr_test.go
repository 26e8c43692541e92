package sonarr

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	httpMock "github.com/packarr/packarr/pkg/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestNew(t *testing.T) {
	t.Run("requires a url", func(t *testing.T) {
		_, err := New("", "key")
		assert.Error(t, err)
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		c, err := New("http://sonarr:8989/", "key")
		require.NoError(t, err)
		assert.Equal(t, "http://sonarr:8989", c.baseURL)
	})
}

func TestClient_GetSeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v3/series/12", req.URL.Path)
		assert.Equal(t, "key", req.Header.Get("X-Api-Key"))
		return jsonResponse(http.StatusOK, `{"id": 12, "title": "Show", "seasons": [{"seasonNumber": 1, "monitored": true}]}`), nil
	})

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	series, err := c.GetSeries(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), series.ID)
	assert.Equal(t, "Show", series.Title)
	require.Len(t, series.Seasons, 1)
	assert.True(t, series.Seasons[0].Monitored)
}

func TestClient_GetSeries_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).Return(jsonResponse(http.StatusUnauthorized, `{"error": "bad key"}`), nil)

	c, err := New("http://sonarr:8989", "nope", WithHTTPClient(mhttp))
	require.NoError(t, err)

	_, err = c.GetSeries(context.Background(), 12)
	assert.Error(t, err)
}

func TestClient_ListEpisodes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v3/episode", req.URL.Path)
		assert.Equal(t, "42", req.URL.Query().Get("seriesId"))
		return jsonResponse(http.StatusOK, `[{"id": 1, "seasonNumber": 1, "episodeNumber": 1, "monitored": true, "hasFile": false}]`), nil
	})

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	episodes, err := c.ListEpisodes(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, episodes, 1)
	assert.True(t, episodes[0].Monitored)
	assert.False(t, episodes[0].HasFile)
}

func TestClient_SearchSeasonReleases(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v3/release", req.URL.Path)
		assert.Equal(t, "42", req.URL.Query().Get("seriesId"))
		assert.Equal(t, "2", req.URL.Query().Get("seasonNumber"))
		return jsonResponse(http.StatusOK, `[{"guid": "abc", "title": "Show.S02.1080p.WEB-DL", "fullSeason": true, "seeders": 12}]`), nil
	})

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	releases, err := c.SearchSeasonReleases(context.Background(), 42, 2)
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.True(t, releases[0].FullSeason)
	assert.Equal(t, int32(12), releases[0].Seeders)
}

func TestClient_DeleteSeasonEpisodeFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	gomock.InOrder(
		mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "/api/v3/episodefile", req.URL.Path)
			return jsonResponse(http.StatusOK, `[
				{"id": 1, "seriesId": 42, "seasonNumber": 2},
				{"id": 2, "seriesId": 42, "seasonNumber": 1},
				{"id": 3, "seriesId": 42, "seasonNumber": 2}
			]`), nil
		}),
		mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/api/v3/episodefile/1", req.URL.Path)
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
		mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/api/v3/episodefile/3", req.URL.Path)
			return jsonResponse(http.StatusOK, `{}`), nil
		}),
	)

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	deleted, err := c.DeleteSeasonEpisodeFiles(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestClient_GrabRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/v3/release", req.URL.Path)

		b, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"guid": "abc", "indexerId": 3}`, string(b))
		return jsonResponse(http.StatusCreated, `{}`), nil
	})

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	err = c.GrabRelease(context.Background(), "abc", 3)
	assert.NoError(t, err)
}

func TestClient_TriggerSeasonSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := httpMock.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/api/v3/command", req.URL.Path)

		b, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "SeasonSearch", "seriesId": 42, "seasonNumber": 2}`, string(b))
		return jsonResponse(http.StatusCreated, `{"id": 99, "name": "SeasonSearch", "status": "queued"}`), nil
	})

	c, err := New("http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	id, err := c.TriggerSeasonSearch(context.Background(), 42, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(99), id)
}

func TestImageURLs(t *testing.T) {
	series := &Series{
		Images: []Image{
			{CoverType: "poster", URL: "/local/poster.jpg", RemoteURL: "https://img/poster.jpg"},
			{CoverType: "fanart", RemoteURL: "https://img/fanart.jpg"},
		},
	}

	assert.Equal(t, "https://img/poster.jpg", PosterURL(series))
	// no banner, falls back to the poster
	assert.Equal(t, "https://img/poster.jpg", BannerURL(series))
	assert.Equal(t, "", PosterURL(nil))
}
