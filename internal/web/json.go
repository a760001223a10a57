package web

import (
	"encoding/json"
	"fmt"

	"github.com/sweeney/matrix-clock/internal/display"
	"github.com/sweeney/matrix-clock/internal/status"
)

// TimeJSON is the lightweight time document for the web page clock.
type TimeJSON struct {
	Time      string `json:"time"`
	Date      string `json:"date"`
	Hour24    int    `json:"hour_24"`
	Hour12    int    `json:"hour_12"`
	Minute    int    `json:"minute"`
	Second    int    `json:"second"`
	Timezone  string `json:"timezone"`
	Use24Hour bool   `json:"use_24_hour"`
	Synced    bool   `json:"synced"`
}

// MatrixJSON mirrors the physical display. Each row is a 32-bit mask,
// bit 0 the leftmost pixel.
type MatrixJSON struct {
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Mode    string   `json:"mode"`
	Powered bool     `json:"powered"`
	Rows    []uint32 `json:"rows"`
}

func formatTimeJSON(snap status.Snapshot) []byte {
	tj := TimeJSON{
		Time:      fmt.Sprintf("%02d:%02d:%02d", snap.Time.Hour24, snap.Time.Minute, snap.Time.Second),
		Date:      fmt.Sprintf("%04d-%02d-%02d", snap.Time.Year, snap.Time.Month, snap.Time.Day),
		Hour24:    snap.Time.Hour24,
		Hour12:    snap.Time.Hour12,
		Minute:    snap.Time.Minute,
		Second:    snap.Time.Second,
		Timezone:  snap.ZoneName,
		Use24Hour: snap.Use24Hour,
		Synced:    snap.TimeSynced,
	}
	data, _ := json.Marshal(tj)
	return data
}

func formatMatrixJSON(snap status.Snapshot) []byte {
	rows := make([]uint32, display.Height)
	copy(rows, snap.FrameRows[:])
	mj := MatrixJSON{
		Width:   display.Width,
		Height:  display.Height,
		Mode:    snap.DisplayMode,
		Powered: snap.Powered,
		Rows:    rows,
	}
	data, _ := json.Marshal(mj)
	return data
}
