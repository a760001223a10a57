// Package status provides a thread-safe tracker for the clock daemon's
// shared state. The control loop and the HTTP handlers both act on state
// here; the tracker's mutex is the single point of mutual exclusion, and
// every configuration mutation routes through the controller's own
// clamping and validation.
package status

import (
	"log"
	"sync"
	"time"

	"github.com/sweeney/matrix-clock/internal/clock"
	"github.com/sweeney/matrix-clock/internal/display"
	"github.com/sweeney/matrix-clock/internal/logic"
	"github.com/sweeney/matrix-clock/internal/sensor"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	TimeoutS    int64
	GraceS      int64
	OverrideMin int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Time clock.Snapshot

	Powered        bool
	Intensity      int
	Phase          logic.Phase
	Countdown      int
	OverrideActive bool
	OverrideExpiry time.Time

	Motion bool
	Light  int

	BrightnessMode logic.BrightnessMode
	Schedule       logic.ScheduleWindow
	InOffWindow    bool

	Use24Hour     bool
	UseFahrenheit bool
	ZoneIndex     int
	ZoneName      string

	Env    sensor.EnvReading
	Counts logic.EventCounts

	TimeSynced bool
	LastSync   time.Time

	MQTTConnected bool
	Network       *NetworkInfo

	DisplayMode string
	FrameRows   [display.Height]uint32

	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind a mutex. The controller and
// the sensor reader live here so ticks and request handlers serialize
// against each other; the hardware is never touched from two goroutines
// at once.
type Tracker struct {
	mu      sync.Mutex
	ctrl    *logic.Controller
	sensors sensor.Reader

	snap Snapshot

	lightChanged bool
	pendingZone  int
	zoneRequest  bool
	resetRequest bool
}

// NewTracker creates a Tracker around the controller and sensor reader.
func NewTracker(ctrl *logic.Controller, sensors sensor.Reader, startTime time.Time, zoneIndex int, zoneName string, cfg Config) *Tracker {
	t := &Tracker{ctrl: ctrl, sensors: sensors}
	t.snap.StartTime = startTime
	t.snap.Config = cfg
	t.snap.ZoneIndex = zoneIndex
	t.snap.ZoneName = zoneName
	t.snap.Schedule = ctrl.Schedule()
	t.snap.BrightnessMode = ctrl.Mode()
	st := ctrl.State()
	t.snap.Powered = st.Powered
	t.snap.Intensity = st.Intensity
	t.snap.Countdown = st.Countdown
	return t
}

// Tick reads the sensors, runs one controller decision, and refreshes the
// tracked state. Called from the control loop every poll interval. The
// returned bool reports a significant ambient light change, used to push a
// UI refresh.
func (t *Tracker) Tick(snap clock.Snapshot, now time.Time) (logic.Decision, []logic.Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	light, err := t.sensors.ReadLight()
	if err != nil {
		log.Printf("light read error: %v", err)
		light = t.snap.Light
	}
	motion, err := t.sensors.ReadMotion()
	if err != nil {
		log.Printf("motion read error: %v", err)
		motion = false
	}

	d, events := t.ctrl.Decide(logic.Input{
		Light:       light,
		Motion:      motion,
		MinuteOfDay: snap.MinuteOfDay(),
		Now:         now,
	})
	changed := t.ctrl.ConsumeLightChanged()
	if changed {
		t.lightChanged = true
	}

	t.snap.Time = snap
	t.snap.Motion = motion
	t.snap.Light = light
	t.applyController(d.Phase)
	return d, events, changed
}

// applyController mirrors the controller's state into the snapshot.
// Caller must hold the lock.
func (t *Tracker) applyController(phase logic.Phase) {
	st := t.ctrl.State()
	t.snap.Powered = st.Powered
	t.snap.Intensity = st.Intensity
	t.snap.Countdown = st.Countdown
	t.snap.OverrideActive = st.OverrideActive
	t.snap.OverrideExpiry = st.OverrideExpiry
	t.snap.Phase = phase
	t.snap.BrightnessMode = t.ctrl.Mode()
	t.snap.Schedule = t.ctrl.Schedule()
	t.snap.Counts = t.ctrl.EventCountsSnapshot()
	t.snap.InOffWindow = t.snap.Schedule.Contains(t.snap.Time.MinuteOfDay())
}

// RefreshEnvironment samples the environment sensor. Called from the loop
// on a slow cadence, not every tick.
func (t *Tracker) RefreshEnvironment() {
	t.mu.Lock()
	defer t.mu.Unlock()
	env, err := t.sensors.ReadEnvironment()
	if err != nil {
		log.Printf("environment read error: %v", err)
		return
	}
	t.snap.Env = env
}

// SetFrame stores the most recently presented frame for the mirror view.
func (t *Tracker) SetFrame(f *display.Frame, mode string) {
	t.mu.Lock()
	t.snap.FrameRows = f.Rows()
	t.snap.DisplayMode = mode
	t.mu.Unlock()
}

// SetSync records the time source's sync state.
func (t *Tracker) SetSync(synced bool, last time.Time) {
	t.mu.Lock()
	t.snap.TimeSynced = synced
	t.snap.LastSync = last
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
// Reading a snapshot never mutates anything; the one-shot light-changed
// flag is consumed separately.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	s := t.snap
	t.mu.Unlock()
	s.Now = time.Now()
	return s
}

// ConsumeLightChanged returns and clears the one-shot light-changed flag.
func (t *Tracker) ConsumeLightChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	changed := t.lightChanged
	t.lightChanged = false
	return changed
}

// freshLight takes an ambient reading under the lock, falling back to the
// last tick's value if the sensor errors.
func (t *Tracker) freshLight() int {
	light, err := t.sensors.ReadLight()
	if err != nil {
		log.Printf("light read error: %v", err)
		return t.snap.Light
	}
	t.snap.Light = light
	return light
}

// TogglePower flips the display under a manual override. Intensity is
// recomputed from a fresh ambient reading, not the last tick's cache.
func (t *Tracker) TogglePower(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.TogglePower(now, t.freshLight())
	t.applyController(logic.PhaseManualOverride)
}

// ToggleBrightnessMode switches between automatic and manual brightness.
func (t *Tracker) ToggleBrightnessMode() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.ToggleBrightnessMode(t.freshLight())
	t.applyController(t.snap.Phase)
}

// SetManualBrightness stores a clamped manual brightness value.
func (t *Tracker) SetManualBrightness(value int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.SetManualBrightness(value)
	t.applyController(t.snap.Phase)
}

// UpdateSchedule replaces the nightly OFF window, clamping each field.
func (t *Tracker) UpdateSchedule(enabled bool, startHour, startMinute, endHour, endMinute int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ctrl.SetSchedule(enabled, startHour, startMinute, endHour, endMinute)
	t.applyController(t.snap.Phase)
}

// ToggleTimeFormat flips between 12- and 24-hour rendering and returns
// the new 24-hour flag.
func (t *Tracker) ToggleTimeFormat() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Use24Hour = !t.snap.Use24Hour
	return t.snap.Use24Hour
}

// ToggleTempUnit flips between Celsius and Fahrenheit and returns the new
// Fahrenheit flag.
func (t *Tracker) ToggleTempUnit() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.UseFahrenheit = !t.snap.UseFahrenheit
	return t.snap.UseFahrenheit
}

// RequestTimezone queues a timezone change for the control loop, which
// owns the time source. Out-of-range indexes are rejected.
func (t *Tracker) RequestTimezone(index int) bool {
	if !clock.ValidZoneIndex(index) {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingZone = index
	t.zoneRequest = true
	return true
}

// ConsumeTimezoneRequest returns a queued timezone change, if any.
func (t *Tracker) ConsumeTimezoneRequest() (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.zoneRequest {
		return 0, false
	}
	t.zoneRequest = false
	return t.pendingZone, true
}

// SetZone records the applied timezone after the loop switches the source.
func (t *Tracker) SetZone(index int, name string) {
	t.mu.Lock()
	t.snap.ZoneIndex = index
	t.snap.ZoneName = name
	t.mu.Unlock()
}

// RequestReset queues a restart. The loop exits cleanly so the supervisor
// brings the daemon back up with a fresh network setup.
func (t *Tracker) RequestReset() {
	t.mu.Lock()
	t.resetRequest = true
	t.mu.Unlock()
}

// ConsumeResetRequest returns and clears the queued reset.
func (t *Tracker) ConsumeResetRequest() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	r := t.resetRequest
	t.resetRequest = false
	return r
}

// RenderSettings returns the current rendering options.
func (t *Tracker) RenderSettings() (use24, fahrenheit bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Use24Hour, t.snap.UseFahrenheit
}

// Environment returns the latest environment reading.
func (t *Tracker) Environment() sensor.EnvReading {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Env
}

// CheckHeartbeat forwards to the controller under the lock.
func (t *Tracker) CheckHeartbeat(now time.Time, interval time.Duration) *logic.HeartbeatData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ctrl.CheckHeartbeat(now, interval)
}
