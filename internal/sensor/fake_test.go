package sensor

import (
	"errors"
	"testing"
)

func TestFakeReaderAdvancesPerLightRead(t *testing.T) {
	f := NewFakeReader([]Sample{
		{Light: 100, Motion: true},
		{Light: 200, Motion: false},
	})

	l, err := f.ReadLight()
	if err != nil {
		t.Fatalf("ReadLight: %v", err)
	}
	if l != 100 {
		t.Errorf("first light: got %d, want 100", l)
	}
	m, _ := f.ReadMotion()
	if !m {
		t.Error("motion should come from the same sample as the light read")
	}
	// Motion can be re-read without advancing.
	m, _ = f.ReadMotion()
	if !m {
		t.Error("repeated motion read should not advance the sample")
	}

	l, _ = f.ReadLight()
	if l != 200 {
		t.Errorf("second light: got %d, want 200", l)
	}
	m, _ = f.ReadMotion()
	if m {
		t.Error("motion should track the second sample")
	}
}

func TestFakeReaderRepeatsLastSample(t *testing.T) {
	f := NewFakeReader([]Sample{{Light: 7}})
	for i := 0; i < 5; i++ {
		l, err := f.ReadLight()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if l != 7 {
			t.Errorf("read %d: got %d, want 7", i, l)
		}
	}
}

func TestFakeReaderEnvironment(t *testing.T) {
	f := NewFakeReader([]Sample{
		{Light: 1, Env: EnvReading{Available: true, TemperatureC: 21, HumidityPct: 40, PressureHPa: 1013}},
	})
	f.ReadLight()
	env, err := f.ReadEnvironment()
	if err != nil {
		t.Fatalf("ReadEnvironment: %v", err)
	}
	if !env.Available || env.TemperatureC != 21 || env.HumidityPct != 40 || env.PressureHPa != 1013 {
		t.Errorf("unexpected reading: %+v", env)
	}
}

func TestFakeReaderErrors(t *testing.T) {
	f := NewFakeReader(nil)
	if _, err := f.ReadLight(); err == nil {
		t.Error("empty fake should error")
	}

	f = NewFakeReader([]Sample{{Light: 1}})
	f.ReadError = errors.New("boom")
	if _, err := f.ReadLight(); err == nil {
		t.Error("ReadError should be surfaced")
	}
	if _, err := f.ReadMotion(); err == nil {
		t.Error("ReadError should be surfaced on motion reads")
	}
}

func TestFakeReaderCloseAndReset(t *testing.T) {
	f := NewFakeReader([]Sample{{Light: 1}, {Light: 2}})
	f.ReadLight()
	f.ReadLight()
	f.Close()
	if !f.Closed {
		t.Error("Closed should be set")
	}
	f.Reset()
	if f.Closed {
		t.Error("Reset should clear Closed")
	}
	if l, _ := f.ReadLight(); l != 1 {
		t.Errorf("after Reset: got %d, want 1", l)
	}
}
