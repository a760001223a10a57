// Package logic contains pure business logic for display power and
// brightness control. This package has NO external dependencies (no GPIO,
// SPI, MQTT, OS, or time.Sleep). Time is always injectable via time.Time
// parameters.
package logic

import "time"

// Phase identifies which rule produced the current power decision.
// Exactly one phase holds per tick, in this priority order.
type Phase string

const (
	PhaseGrace          Phase = "GRACE"
	PhaseManualOverride Phase = "MANUAL_OVERRIDE"
	PhaseScheduleOff    Phase = "SCHEDULE_OFF"
	PhaseMotionActive   Phase = "MOTION_ACTIVE"
	PhaseFading         Phase = "FADING"
	PhaseOff            Phase = "OFF"
)

// Intensity bounds for the MAX7219 intensity register.
const (
	MinIntensity       = 1
	MaxIntensity       = 15
	MaxLight           = 1023
	lightChangeMinStep = 51 // ~5% of full scale; noise floor for change detection
)

// DisplayState is the authoritative power/brightness state.
// Countdown is in ticks and always within [0, Config.Timeout].
// Intensity is only meaningful while Powered.
type DisplayState struct {
	Powered        bool
	Intensity      int
	Countdown      int
	OverrideActive bool
	OverrideExpiry time.Time
}

// BrightnessMode selects between ambient-derived and fixed brightness.
// Value is only consulted when Manual is set and is always in [1,15].
type BrightnessMode struct {
	Manual bool
	Value  int
}

// ScheduleWindow is a forced-OFF interval in minutes of day.
// Start > End means the window spans midnight. Start == End means the
// window is empty and never forces off.
type ScheduleWindow struct {
	Enabled     bool
	StartMinute int
	EndMinute   int
}

// Contains reports whether the given minute of day falls inside the
// forced-OFF window.
func (w ScheduleWindow) Contains(minuteOfDay int) bool {
	if !w.Enabled || w.StartMinute == w.EndMinute {
		return false
	}
	if w.StartMinute < w.EndMinute {
		return minuteOfDay >= w.StartMinute && minuteOfDay < w.EndMinute
	}
	return minuteOfDay >= w.StartMinute || minuteOfDay < w.EndMinute
}

// Input is one tick's worth of sensor and time readings.
type Input struct {
	Light       int // raw ambient reading, 0..1023 (higher = darker)
	Motion      bool
	MinuteOfDay int // 0..1439, local time
	Now         time.Time
}

// Decision is the authoritative output of one control tick.
type Decision struct {
	Powered   bool
	Intensity int
	Phase     Phase
}

// EventType represents a state transition event.
type EventType string

const (
	EventDisplayOn  EventType = "DISPLAY_ON"
	EventDisplayOff EventType = "DISPLAY_OFF"
	EventMotion     EventType = "MOTION"
)

// Event represents a transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Powered   bool
	Intensity int
	Phase     Phase
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	DisplayOn  int
	DisplayOff int
	Motion     int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}

// Config holds the controller's timing constants.
type Config struct {
	// Timeout is the inactivity countdown length in ticks.
	Timeout int
	// Grace forces the display on for this long after startup.
	Grace time.Duration
	// OverrideDuration is how long a manual power toggle holds.
	OverrideDuration time.Duration
}

// Defaults matching the firmware the schedule shipped with: display off
// overnight from 22:00 to 06:00, automatic brightness.
const (
	DefaultScheduleStartMinute = 22 * 60
	DefaultScheduleEndMinute   = 6 * 60
)
