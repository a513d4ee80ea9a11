package models

import "math"

// PlaybackSpeeds are the speed multipliers playlist summaries are shown at.
var PlaybackSpeeds = []float64{1.25, 1.5, 1.75, 2}

// PlaylistInfo is the response body of GET /youtube/playlist-info.
type PlaylistInfo struct {
	PlaylistID           string `json:"playlistId,omitempty"`
	VideoCount           int    `json:"videoCount"`
	TotalDurationSeconds int    `json:"totalDurationSeconds"`
}

// AverageSeconds is the mean video length, zero for an empty playlist.
func (p PlaylistInfo) AverageSeconds() int {
	if p.VideoCount <= 0 {
		return 0
	}
	return int(math.Round(float64(p.TotalDurationSeconds) / float64(p.VideoCount)))
}

// AtSpeed is the total duration when watched at the given speed multiplier.
func (p PlaylistInfo) AtSpeed(speed float64) int {
	if speed <= 0 {
		return p.TotalDurationSeconds
	}
	return int(math.Round(float64(p.TotalDurationSeconds) / speed))
}
