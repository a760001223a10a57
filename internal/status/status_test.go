package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/matrix-clock/internal/clock"
	"github.com/sweeney/matrix-clock/internal/logic"
	"github.com/sweeney/matrix-clock/internal/sensor"
)

var noonSnap = clock.Snapshot{
	Hour24: 12, Hour12: 12, Minute: 0, Second: 0,
	Day: 14, Month: 9, Year: 2026, Weekday: 1,
}

// newTestTracker wires a tracker to a controller with no startup grace so
// decisions reflect sensor input immediately.
func newTestTracker(samples []sensor.Sample) (*Tracker, time.Time) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctrl := logic.NewController(logic.Config{
		Timeout:          60,
		Grace:            0,
		OverrideDuration: 30 * time.Minute,
	}, start)
	reader := sensor.NewFakeReader(samples)
	cfg := Config{PollMs: 100, TimeoutS: 90, Broker: "tcp://localhost:1883", HTTPAddr: ":80"}
	return NewTracker(ctrl, reader, start, 0, "Sydney, Australia", cfg), start
}

func TestNewTracker(t *testing.T) {
	tr, start := newTestTracker(nil)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.PollMs != 100 {
		t.Errorf("Config.PollMs: got %d, want 100", snap.Config.PollMs)
	}
	if !snap.Powered {
		t.Error("display should start powered")
	}
	if snap.ZoneName != "Sydney, Australia" {
		t.Errorf("ZoneName: got %q", snap.ZoneName)
	}
	if !snap.Schedule.Enabled {
		t.Error("default schedule should be enabled")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestTickUpdatesSnapshot(t *testing.T) {
	tr, start := newTestTracker([]sensor.Sample{
		{Light: 512, Motion: true},
	})

	d, events, _ := tr.Tick(noonSnap, start.Add(time.Second))
	if !d.Powered {
		t.Error("motion at noon should keep the display on")
	}
	if d.Phase != logic.PhaseMotionActive {
		t.Errorf("phase: got %v, want MOTION_ACTIVE", d.Phase)
	}
	if d.Intensity != 7 {
		t.Errorf("ambient intensity for 512: got %d, want 7", d.Intensity)
	}

	var sawMotion bool
	for _, e := range events {
		if e.Type == logic.EventMotion {
			sawMotion = true
		}
	}
	if !sawMotion {
		t.Error("expected a MOTION event")
	}

	snap := tr.Snapshot()
	if snap.Light != 512 || !snap.Motion {
		t.Errorf("sensor mirror: got light=%d motion=%v", snap.Light, snap.Motion)
	}
	if snap.Intensity != 7 {
		t.Errorf("snapshot intensity: got %d, want 7", snap.Intensity)
	}
	if snap.InOffWindow {
		t.Error("noon is outside the default 22:00-06:00 window")
	}
}

func TestTogglePowerReadsFreshAmbient(t *testing.T) {
	// The toggle that powers back on must not reuse the stale tick reading.
	tr, start := newTestTracker([]sensor.Sample{
		{Light: 1023}, // tick: fully dark
		{Light: 1023}, // first toggle (turning off, reading unused)
		{Light: 0},    // second toggle: fully bright
	})

	tr.Tick(noonSnap, start.Add(time.Second))
	tr.TogglePower(start.Add(2 * time.Second))
	if snap := tr.Snapshot(); snap.Powered || !snap.OverrideActive {
		t.Fatalf("first toggle: powered=%v override=%v", snap.Powered, snap.OverrideActive)
	}

	tr.TogglePower(start.Add(3 * time.Second))
	snap := tr.Snapshot()
	if !snap.Powered {
		t.Fatal("second toggle should power on")
	}
	if snap.Light != 0 {
		t.Errorf("fresh reading: got %d, want 0", snap.Light)
	}
	if snap.Intensity != 14 {
		t.Errorf("intensity for bright room: got %d, want 14", snap.Intensity)
	}
}

func TestSetManualBrightnessClamps(t *testing.T) {
	tr, _ := newTestTracker([]sensor.Sample{{Light: 500}})

	tr.SetManualBrightness(25)
	if got := tr.Snapshot().BrightnessMode.Value; got != 15 {
		t.Errorf("manual value: got %d, want 15", got)
	}
	tr.SetManualBrightness(-3)
	if got := tr.Snapshot().BrightnessMode.Value; got != 1 {
		t.Errorf("manual value: got %d, want 1", got)
	}
}

func TestUpdateScheduleClamps(t *testing.T) {
	tr, _ := newTestTracker(nil)

	tr.UpdateSchedule(true, 99, -5, 7, 30)
	snap := tr.Snapshot()
	if snap.Schedule.StartMinute != 23*60 {
		t.Errorf("start: got %d, want %d", snap.Schedule.StartMinute, 23*60)
	}
	if snap.Schedule.EndMinute != 7*60+30 {
		t.Errorf("end: got %d, want %d", snap.Schedule.EndMinute, 7*60+30)
	}
}

func TestLightChangedIsOneShot(t *testing.T) {
	tr, start := newTestTracker([]sensor.Sample{
		{Light: 500},
		{Light: 900},
	})

	tr.Tick(noonSnap, start.Add(time.Second))
	if tr.ConsumeLightChanged() {
		t.Fatal("first reading only primes the detector")
	}

	_, _, changed := tr.Tick(noonSnap, start.Add(2*time.Second))
	if !changed {
		t.Fatal("jump of 400 should report a change")
	}
	if !tr.ConsumeLightChanged() {
		t.Error("flag should be readable once")
	}
	if tr.ConsumeLightChanged() {
		t.Error("flag should clear after the first read")
	}
}

func TestTimezoneRequestQueue(t *testing.T) {
	tr, _ := newTestTracker(nil)

	if tr.RequestTimezone(-1) || tr.RequestTimezone(100000) {
		t.Error("out-of-range indexes must be rejected")
	}
	if _, ok := tr.ConsumeTimezoneRequest(); ok {
		t.Fatal("no request should be queued yet")
	}

	if !tr.RequestTimezone(5) {
		t.Fatal("valid index rejected")
	}
	idx, ok := tr.ConsumeTimezoneRequest()
	if !ok || idx != 5 {
		t.Errorf("consume: got (%d,%v), want (5,true)", idx, ok)
	}
	if _, ok := tr.ConsumeTimezoneRequest(); ok {
		t.Error("request should clear after consumption")
	}

	tr.SetZone(5, "London, England")
	snap := tr.Snapshot()
	if snap.ZoneIndex != 5 || snap.ZoneName != "London, England" {
		t.Errorf("zone: got (%d,%q)", snap.ZoneIndex, snap.ZoneName)
	}
}

func TestToggleFormatAndUnit(t *testing.T) {
	tr, _ := newTestTracker(nil)

	if !tr.ToggleTimeFormat() {
		t.Error("first toggle should enable 24-hour")
	}
	if tr.ToggleTimeFormat() {
		t.Error("second toggle should restore 12-hour")
	}
	if !tr.ToggleTempUnit() {
		t.Error("first toggle should enable Fahrenheit")
	}
	use24, fahrenheit := tr.RenderSettings()
	if use24 || !fahrenheit {
		t.Errorf("settings: got use24=%v fahrenheit=%v", use24, fahrenheit)
	}
}

func TestResetRequestQueue(t *testing.T) {
	tr, _ := newTestTracker(nil)
	if tr.ConsumeResetRequest() {
		t.Fatal("no reset queued yet")
	}
	tr.RequestReset()
	if !tr.ConsumeResetRequest() {
		t.Error("queued reset should be consumed")
	}
	if tr.ConsumeResetRequest() {
		t.Error("reset should clear after consumption")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr, start := newTestTracker([]sensor.Sample{
		{Light: 100},
		{Light: 900},
	})

	tr.Tick(noonSnap, start.Add(time.Second))
	snap1 := tr.Snapshot()
	tr.Tick(noonSnap, start.Add(2*time.Second))

	if snap1.Light != 100 {
		t.Error("snapshot should be a copy; Light was modified")
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Time:           clock.Snapshot{Hour24: 14, Minute: 30, Second: 45, Day: 14, Month: 9, Year: 2026},
		Powered:        true,
		Intensity:      7,
		Phase:          logic.PhaseMotionActive,
		BrightnessMode: logic.BrightnessMode{Value: 8},
		Schedule:       logic.ScheduleWindow{Enabled: true, StartMinute: 22 * 60, EndMinute: 6 * 60},
		Light:          512,
		Motion:         true,
		Env:            sensor.EnvReading{Available: true, TemperatureC: 21, HumidityPct: 48, PressureHPa: 1013},
		Counts:         logic.EventCounts{DisplayOn: 5, DisplayOff: 4, Motion: 12},
		ZoneName:       "Sydney, Australia",
		TimeSynced:     true,
		StartTime:      start,
		Now:            start.Add(15 * time.Minute),
		MQTTConnected:  true,
		Config:         Config{PollMs: 100, TimeoutS: 90, HeartbeatMs: 900000, Broker: "tcp://localhost:1883", HTTPAddr: ":80"},
	}

	data := FormatJSON(snap, true)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !parsed.Status.Display.Powered {
		t.Error("expected display.powered=true")
	}
	if parsed.Status.Display.Phase != "MOTION_ACTIVE" {
		t.Errorf("phase: got %q", parsed.Status.Display.Phase)
	}
	if parsed.Status.Display.BrightnessMode != "auto" {
		t.Errorf("brightness mode: got %q, want auto", parsed.Status.Display.BrightnessMode)
	}
	if !parsed.Status.Display.LightChanged {
		t.Error("expected light_changed=true")
	}
	if parsed.Status.Sensors.Light != 512 {
		t.Errorf("light: got %d, want 512", parsed.Status.Sensors.Light)
	}
	if parsed.Status.Sensors.Pressure != 1013 {
		t.Errorf("pressure: got %d, want 1013", parsed.Status.Sensors.Pressure)
	}
	if parsed.Status.Schedule.Start != "22:00" || parsed.Status.Schedule.End != "06:00" {
		t.Errorf("schedule: got %q-%q", parsed.Status.Schedule.Start, parsed.Status.Schedule.End)
	}
	if parsed.Status.Clock.Time != "14:30:45" {
		t.Errorf("clock time: got %q", parsed.Status.Clock.Time)
	}
	if parsed.Status.Clock.Date != "2026-09-14" {
		t.Errorf("clock date: got %q", parsed.Status.Clock.Date)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
	if !parsed.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if parsed.Status.Counts.Motion != 12 {
		t.Errorf("Counts.Motion: got %d, want 12", parsed.Status.Counts.Motion)
	}
	// Event and Reason should be omitted
	if parsed.Status.Event != "" {
		t.Errorf("expected empty Event for web format, got %q", parsed.Status.Event)
	}
}

func TestFormatJSONUnknownPhase(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatJSON(snap, false)

	var parsed StatusJSON
	json.Unmarshal(data, &parsed)

	if parsed.Status.Display.Phase != "UNKNOWN" {
		t.Errorf("phase: got %q, want UNKNOWN", parsed.Status.Display.Phase)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Powered:   true,
		Phase:     logic.PhaseFading,
		Counts:    logic.EventCounts{DisplayOn: 3},
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
		Config:    Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "HEARTBEAT", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "HEARTBEAT" {
		t.Errorf("Event: got %q, want HEARTBEAT", parsed.Status.Event)
	}
	if parsed.Status.Reason != "" {
		t.Errorf("Reason: got %q, want empty", parsed.Status.Reason)
	}
	if parsed.Status.UptimeSeconds != 900 {
		t.Errorf("UptimeSeconds: got %d, want 900", parsed.Status.UptimeSeconds)
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(30 * time.Minute),
		Config:    Config{Broker: "tcp://localhost:1883"},
	}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("Event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("Reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestFormatStatusEventOmitsReasonWhenEmpty(t *testing.T) {
	snap := Snapshot{
		StartTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Now:       time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	statusObj := raw["status"].(map[string]interface{})
	if _, exists := statusObj["reason"]; exists {
		t.Error("reason should be omitted when empty")
	}
	if statusObj["event"] != "STARTUP" {
		t.Errorf("event: got %v, want STARTUP", statusObj["event"])
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr, start := newTestTracker([]sensor.Sample{{Light: 500}})
	var wg sync.WaitGroup

	// Control loop
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			tr.Tick(noonSnap, start.Add(time.Duration(i)*time.Second))
			tr.SetMQTTConnected(i%2 == 0)
		}
	}()

	// HTTP handlers
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := tr.Snapshot()
			_ = snap.Uptime()
			tr.ConsumeLightChanged()
			if i%100 == 0 {
				tr.SetManualBrightness(i % 16)
			}
		}
	}()

	wg.Wait()
}
