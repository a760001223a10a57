package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event  string `json:"event,omitempty"`
	Reason string `json:"reason,omitempty"`

	Display  DisplayJSON  `json:"display"`
	Sensors  SensorsJSON  `json:"sensors"`
	Schedule ScheduleJSON `json:"schedule"`
	Settings SettingsJSON `json:"settings"`
	Clock    ClockJSON    `json:"clock"`

	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// DisplayJSON reports the display's power and brightness state.
type DisplayJSON struct {
	Powered        bool   `json:"powered"`
	Intensity      int    `json:"intensity"`
	Phase          string `json:"phase"`
	Mode           string `json:"mode,omitempty"`
	CountdownTicks int    `json:"countdown_ticks"`
	OverrideActive bool   `json:"override_active"`
	OverrideUntil  string `json:"override_until,omitempty"`
	BrightnessMode string `json:"brightness_mode"`
	ManualValue    int    `json:"manual_value"`
	LightChanged   bool   `json:"light_changed"`
}

// SensorsJSON reports the latest raw sensor readings.
type SensorsJSON struct {
	Light       int   `json:"light"`
	Motion      bool  `json:"motion"`
	EnvPresent  bool  `json:"env_present"`
	Temperature int   `json:"temperature_c"`
	Humidity    int   `json:"humidity_pct"`
	Pressure    int   `json:"pressure_hpa"`
}

// ScheduleJSON reports the nightly OFF window.
type ScheduleJSON struct {
	Enabled     bool   `json:"enabled"`
	Start       string `json:"start"`
	End         string `json:"end"`
	InOffWindow bool   `json:"in_off_window"`
}

// SettingsJSON reports the user-facing rendering options.
type SettingsJSON struct {
	Use24Hour     bool   `json:"use_24_hour"`
	UseFahrenheit bool   `json:"use_fahrenheit"`
	ZoneIndex     int    `json:"timezone_index"`
	ZoneName      string `json:"timezone"`
}

// ClockJSON reports the time source state.
type ClockJSON struct {
	Time     string `json:"time"`
	Date     string `json:"date"`
	Synced   bool   `json:"synced"`
	LastSync string `json:"last_sync,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	DisplayOn  int `json:"display_on"`
	DisplayOff int `json:"display_off"`
	Motion     int `json:"motion"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	TimeoutS    int64  `json:"timeout_s"`
	GraceS      int64  `json:"grace_s"`
	OverrideMin int64  `json:"override_min"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

func buildInner(snap Snapshot, lightChanged bool) StatusInner {
	brightnessMode := "auto"
	if snap.BrightnessMode.Manual {
		brightnessMode = "manual"
	}
	phase := string(snap.Phase)
	if phase == "" {
		phase = "UNKNOWN"
	}

	inner := StatusInner{
		Display: DisplayJSON{
			Powered:        snap.Powered,
			Intensity:      snap.Intensity,
			Phase:          phase,
			Mode:           snap.DisplayMode,
			CountdownTicks: snap.Countdown,
			OverrideActive: snap.OverrideActive,
			BrightnessMode: brightnessMode,
			ManualValue:    snap.BrightnessMode.Value,
			LightChanged:   lightChanged,
		},
		Sensors: SensorsJSON{
			Light:       snap.Light,
			Motion:      snap.Motion,
			EnvPresent:  snap.Env.Available,
			Temperature: snap.Env.TemperatureC,
			Humidity:    snap.Env.HumidityPct,
			Pressure:    snap.Env.PressureHPa,
		},
		Schedule: ScheduleJSON{
			Enabled:     snap.Schedule.Enabled,
			Start:       minuteClock(snap.Schedule.StartMinute),
			End:         minuteClock(snap.Schedule.EndMinute),
			InOffWindow: snap.InOffWindow,
		},
		Settings: SettingsJSON{
			Use24Hour:     snap.Use24Hour,
			UseFahrenheit: snap.UseFahrenheit,
			ZoneIndex:     snap.ZoneIndex,
			ZoneName:      snap.ZoneName,
		},
		Clock: ClockJSON{
			Time:   fmt.Sprintf("%02d:%02d:%02d", snap.Time.Hour24, snap.Time.Minute, snap.Time.Second),
			Date:   fmt.Sprintf("%04d-%02d-%02d", snap.Time.Year, snap.Time.Month, snap.Time.Day),
			Synced: snap.TimeSynced,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			DisplayOn:  snap.Counts.DisplayOn,
			DisplayOff: snap.Counts.DisplayOff,
			Motion:     snap.Counts.Motion,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			TimeoutS:    snap.Config.TimeoutS,
			GraceS:      snap.Config.GraceS,
			OverrideMin: snap.Config.OverrideMin,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
	if snap.OverrideActive {
		inner.Display.OverrideUntil = snap.OverrideExpiry.UTC().Format(time.RFC3339)
	}
	if !snap.LastSync.IsZero() {
		inner.Clock.LastSync = snap.LastSync.UTC().Format(time.RFC3339)
	}
	return inner
}

func minuteClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot, lightChanged bool) []byte {
	inner := buildInner(snap, lightChanged)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap, false)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
