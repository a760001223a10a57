package logic

// AmbientIntensity maps a raw light reading to a display intensity.
// The LDR divider produces higher readings in darker rooms, so the linear
// map is inverted: bright ambient (low raw) gives high intensity, dark
// ambient (high raw) gives low intensity.
func AmbientIntensity(raw int) int {
	if raw < 0 {
		raw = 0
	}
	if raw > MaxLight {
		raw = MaxLight
	}
	return MaxIntensity - (1 + raw*(MaxIntensity-1)/MaxLight)
}

// ClampBrightness restricts a manual brightness value to [1,15].
func ClampBrightness(v int) int {
	if v < MinIntensity {
		return MinIntensity
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return v
}

// ClampHour restricts an hour to [0,23].
func ClampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}

// ClampMinute restricts a minute to [0,59].
func ClampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > 59 {
		return 59
	}
	return m
}
