package sonarr

import "time"

// Series is a series resource from the Sonarr v3 API
type Series struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title"`
	TitleSlug  string           `json:"titleSlug"`
	Status     string           `json:"status"`
	Year       int              `json:"year"`
	TvdbID     int64            `json:"tvdbId"`
	Runtime    int              `json:"runtime"`
	Network    string           `json:"network"`
	Monitored  bool             `json:"monitored"`
	Seasons    []Season         `json:"seasons"`
	Images     []Image          `json:"images"`
	Statistics SeriesStatistics `json:"statistics"`
}

// Season is a season entry within a series resource
type Season struct {
	SeasonNumber int               `json:"seasonNumber"`
	Monitored    bool              `json:"monitored"`
	Statistics   *SeasonStatistics `json:"statistics,omitempty"`
}

type SeasonStatistics struct {
	EpisodeFileCount  int     `json:"episodeFileCount"`
	EpisodeCount      int     `json:"episodeCount"`
	TotalEpisodeCount int     `json:"totalEpisodeCount"`
	SizeOnDisk        int64   `json:"sizeOnDisk"`
	PercentOfEpisodes float64 `json:"percentOfEpisodes"`
}

type SeriesStatistics struct {
	SeasonCount       int   `json:"seasonCount"`
	EpisodeFileCount  int   `json:"episodeFileCount"`
	EpisodeCount      int   `json:"episodeCount"`
	TotalEpisodeCount int   `json:"totalEpisodeCount"`
	SizeOnDisk        int64 `json:"sizeOnDisk"`
}

// Image is a cover image attached to a series
type Image struct {
	CoverType string `json:"coverType"`
	URL       string `json:"url"`
	RemoteURL string `json:"remoteUrl"`
}

// Episode is an episode resource from the Sonarr v3 API
type Episode struct {
	ID            int64      `json:"id"`
	SeriesID      int64      `json:"seriesId"`
	SeasonNumber  int        `json:"seasonNumber"`
	EpisodeNumber int        `json:"episodeNumber"`
	Title         string     `json:"title"`
	AirDateUTC    *time.Time `json:"airDateUtc,omitempty"`
	Monitored     bool       `json:"monitored"`
	HasFile       bool       `json:"hasFile"`
	EpisodeFileID int64      `json:"episodeFileId"`
}

// EpisodeFile is an episode file resource from the Sonarr v3 API
type EpisodeFile struct {
	ID           int64  `json:"id"`
	SeriesID     int64  `json:"seriesId"`
	SeasonNumber int    `json:"seasonNumber"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// Release is a release resource returned by a Sonarr interactive search
type Release struct {
	GUID         string         `json:"guid"`
	Title        string         `json:"title"`
	Size         int64          `json:"size"`
	Seeders      int32          `json:"seeders"`
	Leechers     int32          `json:"leechers"`
	Age          int32          `json:"age"` // days
	Indexer      string         `json:"indexer"`
	IndexerID    int32          `json:"indexerId"`
	FullSeason   bool           `json:"fullSeason"`
	SeasonNumber int            `json:"seasonNumber"`
	Protocol     string         `json:"protocol"`
	Quality      ReleaseQuality `json:"quality"`
	Rejected     bool           `json:"rejected"`
}

type ReleaseQuality struct {
	Quality QualityDetail `json:"quality"`
}

type QualityDetail struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Source     string `json:"source"`
	Resolution int    `json:"resolution"`
}

// GrabRequest instructs Sonarr to download a specific release
type GrabRequest struct {
	GUID      string `json:"guid"`
	IndexerID int32  `json:"indexerId"`
}

// CommandRequest triggers a Sonarr command such as SeasonSearch
type CommandRequest struct {
	Name         string `json:"name"`
	SeriesID     int64  `json:"seriesId,omitempty"`
	SeasonNumber int    `json:"seasonNumber,omitempty"`
}

// CommandResponse is the acknowledgement for a triggered command
type CommandResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// SystemStatus is the response from the system/status endpoint
type SystemStatus struct {
	AppName string `json:"appName"`
	Version string `json:"version"`
}
