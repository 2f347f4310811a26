package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte(`
frames: 120
fps: 30
log_level: debug
parameters:
  Speed: "2.5"
  Shape: Ramp
pulses:
  Reset: [10, 20]
input:
  rate: 60
  channels:
    - [0, 0.5, 1]
    - [1, 0.5, 0]
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frames != 120 || cfg.FPS != 30 || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Parameters["Speed"] != "2.5" || cfg.Parameters["Shape"] != "Ramp" {
		t.Errorf("parameters = %v", cfg.Parameters)
	}
	if got := cfg.Pulses["Reset"]; len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("pulses = %v", cfg.Pulses)
	}
	if cfg.Input == nil || cfg.Input.Rate != 60 || len(cfg.Input.Channels) != 2 || cfg.Input.Channels[0][1] != 0.5 {
		t.Errorf("input = %+v", cfg.Input)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("samples: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frames != defaultFrames || cfg.FPS != defaultFPS || cfg.Samples != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Parameters == nil || cfg.Pulses == nil {
		t.Error("maps should be allocated")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "frames: [1"},
		{"negative frames", "frames: -1"},
		{"zero fps", "fps: 0"},
		{"negative samples", "samples: -2"},
		{"negative pulse", "pulses:\n  Reset: [-1]"},
		{"input rate", "input:\n  rate: 0\n  channels: [[1]]"},
		{"ragged input", "input:\n  rate: 60\n  channels: [[1, 2], [1]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("frames: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Frames != 3 {
		t.Errorf("frames = %d", cfg.Frames)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestSetParameter(t *testing.T) {
	cfg := Default()

	if err := cfg.SetParameter("Speed = 3"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SetParameter("Shape=Square"); err != nil {
		t.Fatal(err)
	}
	if cfg.Parameters["Speed"] != "3" || cfg.Parameters["Shape"] != "Square" {
		t.Errorf("parameters = %v", cfg.Parameters)
	}
	if names := cfg.ParameterNames(); len(names) != 2 || names[0] != "Shape" || names[1] != "Speed" {
		t.Errorf("names = %v", names)
	}

	for _, bad := range []string{"Speed", "=3", ""} {
		if err := cfg.SetParameter(bad); err == nil {
			t.Errorf("SetParameter(%q) should fail", bad)
		}
	}
}

func TestAddPulse(t *testing.T) {
	cfg := Default()

	if err := cfg.AddPulse("Reset@5"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddPulse("Reset @ 9"); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Pulses["Reset"]; len(got) != 2 || got[0] != 5 || got[1] != 9 {
		t.Errorf("pulses = %v", cfg.Pulses)
	}

	for _, bad := range []string{"Reset", "@3", "Reset@x", "Reset@-1"} {
		if err := cfg.AddPulse(bad); err == nil {
			t.Errorf("AddPulse(%q) should fail", bad)
		}
	}
}

func TestPulseNames(t *testing.T) {
	cfg := Default()
	for _, press := range []string{"Zero@1", "Reset@1", "Hold@1", "Reset@2"} {
		if err := cfg.AddPulse(press); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{"Hold", "Reset", "Zero"}
	for i := 0; i < 10; i++ {
		names := cfg.PulseNames()
		if len(names) != len(want) {
			t.Fatalf("names = %v", names)
		}
		for j := range want {
			if names[j] != want[j] {
				t.Fatalf("names = %v, want %v", names, want)
			}
		}
	}
}
