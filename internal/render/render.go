// Package render draws the clock's display modes into a frame buffer.
// It is pure: all inputs (time fields, sensor values, settings) arrive as
// parameters, and the caller decides whether the result is ever presented.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sweeney/matrix-clock/internal/clock"
	"github.com/sweeney/matrix-clock/internal/display"
	"github.com/sweeney/matrix-clock/internal/sensor"
)

// Mode selects what the matrix shows.
type Mode int

const (
	ModeTimeAndEnvironment Mode = iota
	ModeTimeLarge
	ModeTimeAndDate
	modeCount
)

// String returns the mode name used by the status API.
func (m Mode) String() string {
	switch m {
	case ModeTimeAndEnvironment:
		return "time+environment"
	case ModeTimeLarge:
		return "time-large"
	case ModeTimeAndDate:
		return "time+date"
	}
	return "unknown"
}

// DefaultCyclePeriod is how long each mode stays up.
const DefaultCyclePeriod = 20 * time.Second

// Settings are the user-facing rendering options.
type Settings struct {
	Use24Hour     bool
	UseFahrenheit bool
}

var months = [...]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// Renderer cycles through the display modes on a fixed wall-clock period.
// The cycle keeps advancing while the display is off, so powering back on
// shows whatever mode is due.
type Renderer struct {
	start  time.Time
	period time.Duration
}

// New creates a renderer anchored at the process start time.
func New(start time.Time, period time.Duration) *Renderer {
	if period <= 0 {
		period = DefaultCyclePeriod
	}
	return &Renderer{start: start, period: period}
}

// ActiveMode returns the mode due at the given instant.
func (r *Renderer) ActiveMode(now time.Time) Mode {
	elapsed := now.Sub(r.start)
	if elapsed < 0 {
		elapsed = 0
	}
	return Mode(int(elapsed/r.period) % int(modeCount))
}

// Render clears the frame and draws the active mode into it.
func (r *Renderer) Render(f *display.Frame, snap clock.Snapshot, env sensor.EnvReading, set Settings, now time.Time) Mode {
	f.Clear()
	// Colon blinks at 2 Hz off the wall clock.
	dots := now.UnixMilli()%1000 < 500
	mode := r.ActiveMode(now)

	switch mode {
	case ModeTimeAndEnvironment:
		drawTimeRow(f, snap, set.Use24Hour, dots, 0)
		display.DrawText(f, environmentLine(env, set.UseFahrenheit), display.Text3x7, 1, 9)
	case ModeTimeLarge:
		drawTimeLarge(f, snap, dots)
	case ModeTimeAndDate:
		drawTimeRow(f, snap, set.Use24Hour, dots, 0)
		date := fmt.Sprintf("%d %s %02d", snap.Day, months[snap.Month-1], snap.Year%100)
		display.DrawText(f, date, display.Text3x7, 1, 9)
	}
	return mode
}

// drawTimeRow renders the compact time on one 8-pixel bank. The 12-hour
// variant appends small seconds; the 24-hour variant drops them because a
// two-digit hour plus seconds does not fit the 32-pixel width.
func drawTimeRow(f *display.Frame, snap clock.Snapshot, use24 bool, dots bool, y int) {
	h := snap.Hour12
	if use24 {
		h = snap.Hour24
	}
	x := 0
	if h <= 9 {
		x = 2
	}
	x = display.DrawText(f, strconv.Itoa(h), display.Digits5x8, x, y)
	if dots {
		display.DrawGlyph(f, ':', display.Digits5x8, x, y)
	}
	x += 2
	x = display.DrawText(f, fmt.Sprintf("%02d", snap.Minute), display.Digits5x8, x, y)
	if !use24 {
		display.DrawText(f, fmt.Sprintf("%02d", snap.Second), display.Digits3x5, x, y)
	}
}

// drawTimeLarge renders the full-height time. Always 12-hour with seconds;
// there is no 24-hour variant of this mode.
func drawTimeLarge(f *display.Frame, snap clock.Snapshot, dots bool) {
	x := 0
	if snap.Hour12 <= 9 {
		x = 3
	}
	x = display.DrawText(f, strconv.Itoa(snap.Hour12), display.DigitsLarge, x, 0)
	if dots {
		display.DrawGlyph(f, ':', display.DigitsLarge, x, 0)
	}
	x += 2
	x = display.DrawText(f, fmt.Sprintf("%02d", snap.Minute), display.DigitsLarge, x, 0)
	display.DrawText(f, fmt.Sprintf("%02d", snap.Second), display.Digits3x5, x, 11)
}

// environmentLine formats the bottom row of the environment mode.
func environmentLine(env sensor.EnvReading, fahrenheit bool) string {
	if !env.Available {
		return "NO SENSOR"
	}
	temp := env.TemperatureC
	unit := "C"
	if fahrenheit {
		temp = temp*9/5 + 32
		unit = "F"
	}
	return fmt.Sprintf("T%d%s H%d%%", temp, unit, env.HumidityPct)
}

// Message clears the frame and draws a short status text in the top-left,
// used for boot and lifecycle messages.
func Message(f *display.Frame, text string) {
	f.Clear()
	display.DrawText(f, text, display.Text3x7, 0, 0)
}
