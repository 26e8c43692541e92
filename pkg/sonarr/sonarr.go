package sonarr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkghttp "github.com/packarr/packarr/pkg/http"
	"github.com/packarr/packarr/pkg/logger"
)

// ClientInterface is the surface of the media manager this service depends on
type ClientInterface interface {
	GetSeries(ctx context.Context, seriesID int64) (*Series, error)
	ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error)
	SearchSeasonReleases(ctx context.Context, seriesID int64, seasonNumber int) ([]Release, error)
	DeleteSeasonEpisodeFiles(ctx context.Context, seriesID int64, seasonNumber int) (int, error)
	GrabRelease(ctx context.Context, guid string, indexerID int32) error
	TriggerSeasonSearch(ctx context.Context, seriesID int64, seasonNumber int) (int64, error)
	Ping(ctx context.Context) error
}

type Client struct {
	baseURL string
	apiKey  string
	http    pkghttp.HTTPClient
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the http client used for requests
func WithHTTPClient(c pkghttp.HTTPClient) Option {
	return func(s *Client) {
		s.http = c
	}
}

// New creates a Sonarr API client for the given base URL and api key
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("sonarr base url is required")
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid sonarr url: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    pkghttp.NewRateLimitedHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	log := logger.FromCtx(ctx)

	u := c.baseURL + "/api/v3" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sonarr request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(res.Body)
		log.Debugw("sonarr request rejected", "path", path, "status", res.StatusCode, "body", string(b))
		return fmt.Errorf("sonarr returned status %s for %s", res.Status, path)
	}

	if out == nil {
		return nil
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

// GetSeries fetches a single series with its seasons and statistics
func (c *Client) GetSeries(ctx context.Context, seriesID int64) (*Series, error) {
	series := new(Series)
	err := c.do(ctx, http.MethodGet, "/series/"+strconv.FormatInt(seriesID, 10), nil, nil, series)
	if err != nil {
		return nil, err
	}

	return series, nil
}

// ListEpisodes lists every episode of a series
func (c *Client) ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error) {
	query := url.Values{}
	query.Set("seriesId", strconv.FormatInt(seriesID, 10))

	var episodes []Episode
	err := c.do(ctx, http.MethodGet, "/episode", query, nil, &episodes)
	if err != nil {
		return nil, err
	}

	return episodes, nil
}

// SearchSeasonReleases runs an interactive release search for a season
func (c *Client) SearchSeasonReleases(ctx context.Context, seriesID int64, seasonNumber int) ([]Release, error) {
	query := url.Values{}
	query.Set("seriesId", strconv.FormatInt(seriesID, 10))
	query.Set("seasonNumber", strconv.Itoa(seasonNumber))

	var releases []Release
	err := c.do(ctx, http.MethodGet, "/release", query, nil, &releases)
	if err != nil {
		return nil, err
	}

	return releases, nil
}

// DeleteSeasonEpisodeFiles removes every episode file of a season.
// It returns the number of files deleted.
func (c *Client) DeleteSeasonEpisodeFiles(ctx context.Context, seriesID int64, seasonNumber int) (int, error) {
	log := logger.FromCtx(ctx)

	query := url.Values{}
	query.Set("seriesId", strconv.FormatInt(seriesID, 10))

	var files []EpisodeFile
	err := c.do(ctx, http.MethodGet, "/episodefile", query, nil, &files)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, f := range files {
		if f.SeasonNumber != seasonNumber {
			continue
		}

		err := c.do(ctx, http.MethodDelete, "/episodefile/"+strconv.FormatInt(f.ID, 10), nil, nil, nil)
		if err != nil {
			return deleted, fmt.Errorf("failed to delete episode file %d: %w", f.ID, err)
		}

		deleted++
	}

	log.Debugw("deleted season episode files", "series", seriesID, "season", seasonNumber, "count", deleted)
	return deleted, nil
}

// GrabRelease instructs Sonarr to download a release by its guid
func (c *Client) GrabRelease(ctx context.Context, guid string, indexerID int32) error {
	req := GrabRequest{
		GUID:      guid,
		IndexerID: indexerID,
	}

	return c.do(ctx, http.MethodPost, "/release", nil, req, nil)
}

// TriggerSeasonSearch queues a SeasonSearch command and returns its command id
func (c *Client) TriggerSeasonSearch(ctx context.Context, seriesID int64, seasonNumber int) (int64, error) {
	req := CommandRequest{
		Name:         "SeasonSearch",
		SeriesID:     seriesID,
		SeasonNumber: seasonNumber,
	}

	resp := new(CommandResponse)
	err := c.do(ctx, http.MethodPost, "/command", nil, req, resp)
	if err != nil {
		return 0, err
	}

	return resp.ID, nil
}

// Ping verifies connectivity and credentials against the system status endpoint
func (c *Client) Ping(ctx context.Context) error {
	status := new(SystemStatus)
	return c.do(ctx, http.MethodGet, "/system/status", nil, nil, status)
}

// PosterURL returns the remote poster image for a series if one exists
func PosterURL(s *Series) string {
	return imageURL(s, "poster")
}

// BannerURL returns the remote banner image for a series, falling back to the poster
func BannerURL(s *Series) string {
	if u := imageURL(s, "banner"); u != "" {
		return u
	}
	return imageURL(s, "poster")
}

func imageURL(s *Series, coverType string) string {
	if s == nil {
		return ""
	}

	for _, img := range s.Images {
		if img.CoverType != coverType {
			continue
		}
		if img.RemoteURL != "" {
			return img.RemoteURL
		}
		return img.URL
	}

	return ""
}
