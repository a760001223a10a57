package logic

import "time"

// Controller decides the authoritative (powered, intensity) pair once per
// control tick, combining manual override, the OFF-window schedule, motion
// with inactivity countdown, and ambient-driven brightness.
type Controller struct {
	cfg       Config
	startTime time.Time

	state    DisplayState
	mode     BrightnessMode
	schedule ScheduleWindow

	lastLight    int
	haveLight    bool
	lightChanged bool

	lastMotion    bool
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewController creates a controller with the given timing constants.
// The startTime anchors the grace period and heartbeat uptime.
func NewController(cfg Config, startTime time.Time) *Controller {
	return &Controller{
		cfg:       cfg,
		startTime: startTime,
		state: DisplayState{
			Powered:   true,
			Countdown: cfg.Timeout,
		},
		mode: BrightnessMode{Value: 8},
		schedule: ScheduleWindow{
			Enabled:     true,
			StartMinute: DefaultScheduleStartMinute,
			EndMinute:   DefaultScheduleEndMinute,
		},
		lastHeartbeat: startTime,
	}
}

// Decide runs one control tick and returns the decision plus any transition
// events. Priority order: grace period, manual override (after expiry
// check), schedule OFF window, motion, inactivity countdown, timeout.
func (c *Controller) Decide(in Input) (Decision, []Event) {
	c.observeLight(in.Light)
	target := c.targetIntensity(in.Light)
	wasPowered := c.state.Powered

	var phase Phase
	switch {
	case in.Now.Sub(c.startTime) < c.cfg.Grace:
		// Startup grace: force on so the display is never dark while
		// sensors and time are still warming up.
		c.state.Powered = true
		c.state.Intensity = target
		c.state.Countdown = c.cfg.Timeout
		phase = PhaseGrace

	case c.overrideActive(in.Now):
		// Power is pinned; brightness still tracks the active mode.
		if c.state.Powered {
			c.state.Intensity = target
		}
		phase = PhaseManualOverride

	case c.schedule.Contains(in.MinuteOfDay):
		c.state.Powered = false
		c.state.Countdown = 0
		phase = PhaseScheduleOff

	case in.Motion:
		c.state.Powered = true
		c.state.Countdown = c.cfg.Timeout
		c.state.Intensity = target
		phase = PhaseMotionActive

	case c.state.Countdown > 0:
		c.state.Countdown--
		c.state.Intensity = fadeIntensity(c.state.Countdown, c.cfg.Timeout, target)
		c.state.Powered = true
		phase = PhaseFading

	default:
		c.state.Powered = false
		phase = PhaseOff
	}

	d := Decision{
		Powered:   c.state.Powered,
		Intensity: c.state.Intensity,
		Phase:     phase,
	}
	return d, c.collectEvents(in, wasPowered, d)
}

// overrideActive clears an expired override before reporting whether one
// still holds.
func (c *Controller) overrideActive(now time.Time) bool {
	if c.state.OverrideActive && !now.Before(c.state.OverrideExpiry) {
		c.state.OverrideActive = false
	}
	return c.state.OverrideActive
}

func (c *Controller) collectEvents(in Input, wasPowered bool, d Decision) []Event {
	var events []Event
	if d.Powered != wasPowered {
		t := EventDisplayOff
		if d.Powered {
			t = EventDisplayOn
			c.eventCounts.DisplayOn++
		} else {
			c.eventCounts.DisplayOff++
		}
		events = append(events, Event{
			Timestamp: in.Now,
			Type:      t,
			Powered:   d.Powered,
			Intensity: d.Intensity,
			Phase:     d.Phase,
		})
	}
	if in.Motion && !c.lastMotion {
		c.eventCounts.Motion++
		events = append(events, Event{
			Timestamp: in.Now,
			Type:      EventMotion,
			Powered:   d.Powered,
			Intensity: d.Intensity,
			Phase:     d.Phase,
		})
	}
	c.lastMotion = in.Motion
	return events
}

// targetIntensity is the brightness the display should run at right now:
// the manual value when manual mode holds, otherwise the ambient mapping.
func (c *Controller) targetIntensity(light int) int {
	if c.mode.Manual {
		return c.mode.Value
	}
	return AmbientIntensity(light)
}

// fadeIntensity interpolates between 1 and target as the countdown drains,
// so the display dims gradually before switching off.
func fadeIntensity(countdown, timeout, target int) int {
	if timeout <= 0 {
		return target
	}
	v := 1 + countdown*(target-1)/timeout
	if v < 0 {
		v = 0
	}
	if v > MaxIntensity {
		v = MaxIntensity
	}
	return v
}

// TogglePower flips the display and pins the decision under a manual
// override until the expiry passes. The caller supplies a fresh ambient
// reading so a power-on never flashes a stale brightness.
func (c *Controller) TogglePower(now time.Time, light int) {
	c.state.OverrideActive = true
	c.state.OverrideExpiry = now.Add(c.cfg.OverrideDuration)
	c.state.Powered = !c.state.Powered
	if c.state.Powered {
		c.state.Intensity = c.targetIntensity(light)
		c.state.Countdown = c.cfg.Timeout
	}
}

// ToggleBrightnessMode switches between automatic and manual brightness and
// recomputes the applied intensity from a fresh ambient reading.
func (c *Controller) ToggleBrightnessMode(light int) {
	c.mode.Manual = !c.mode.Manual
	if c.state.Powered {
		c.state.Intensity = c.targetIntensity(light)
	}
}

// SetManualBrightness stores a clamped manual brightness value. The value
// is applied immediately when manual mode holds and the display is on.
func (c *Controller) SetManualBrightness(value int) {
	c.mode.Value = ClampBrightness(value)
	if c.mode.Manual && c.state.Powered {
		c.state.Intensity = c.mode.Value
	}
}

// SetSchedule replaces the OFF window. Hours and minutes are clamped to
// valid ranges rather than rejected.
func (c *Controller) SetSchedule(enabled bool, startHour, startMinute, endHour, endMinute int) {
	c.schedule = ScheduleWindow{
		Enabled:     enabled,
		StartMinute: ClampHour(startHour)*60 + ClampMinute(startMinute),
		EndMinute:   ClampHour(endHour)*60 + ClampMinute(endMinute),
	}
}

// observeLight tracks the previous ambient sample and raises the one-shot
// change flag on a >=5% relative move (with an absolute noise floor).
func (c *Controller) observeLight(light int) {
	if !c.haveLight {
		c.haveLight = true
		c.lastLight = light
		return
	}
	delta := light - c.lastLight
	if delta < 0 {
		delta = -delta
	}
	threshold := c.lastLight / 20
	if threshold < lightChangeMinStep {
		threshold = lightChangeMinStep
	}
	if delta >= threshold {
		c.lightChanged = true
	}
	c.lastLight = light
}

// ConsumeLightChanged returns and clears the one-shot light-changed flag.
func (c *Controller) ConsumeLightChanged() bool {
	changed := c.lightChanged
	c.lightChanged = false
	return changed
}

// State returns a copy of the current display state.
func (c *Controller) State() DisplayState { return c.state }

// Mode returns the active brightness mode.
func (c *Controller) Mode() BrightnessMode { return c.mode }

// Schedule returns the configured OFF window.
func (c *Controller) Schedule() ScheduleWindow { return c.schedule }

// LastLight returns the most recent ambient sample seen by Decide.
func (c *Controller) LastLight() int { return c.lastLight }

// EventCountsSnapshot returns the event counts since startup.
func (c *Controller) EventCountsSnapshot() EventCounts { return c.eventCounts }

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}
	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.eventCounts,
	}
}
