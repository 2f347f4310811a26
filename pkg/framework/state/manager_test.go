package state

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/justyntemme/chopgo/pkg/framework/param"
)

func newRegistry() *param.Registry {
	r := param.NewRegistry()
	r.Add(
		param.SliderParameter(0, "Speed", -10, 10, 1).Build(),
		param.SliderParameter(1, "Scale", -10, 10, 1).Build(),
		param.Choice(2, "Shape", []string{"Sine", "Square", "Ramp"}, nil).Build(),
		param.PulseParameter(3, "Reset").Build(),
	)
	return r
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := newRegistry()
	src.GetByName("Speed").SetPlainValue(2.5)
	src.GetByName("Scale").SetPlainValue(-4)
	src.GetByName("Shape").SetMenuIndex(2)

	var buf bytes.Buffer
	if err := NewManager(src).Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "CHOPGO") {
		t.Error("missing magic header")
	}

	dst := newRegistry()
	if err := NewManager(dst).Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := dst.GetByName("Speed").GetPlainValue(); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Speed = %f, want 2.5", got)
	}
	if got := dst.GetByName("Scale").GetPlainValue(); math.Abs(got+4) > 1e-9 {
		t.Errorf("Scale = %f, want -4", got)
	}
	if got := dst.GetByName("Shape").MenuName(); got != "Ramp" {
		t.Errorf("Shape = %s, want Ramp", got)
	}
}

func TestSnapshotSkipsPulses(t *testing.T) {
	snap := NewManager(newRegistry()).Snapshot()

	if _, ok := snap.Values["Reset"]; ok {
		t.Error("pulse parameter should not be in snapshot")
	}
	if len(snap.Values) != 3 {
		t.Errorf("snapshot has %d values, want 3", len(snap.Values))
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("BadMagic", func(t *testing.T) {
		err := NewManager(newRegistry()).Load(strings.NewReader("PRESETxxxx"))
		if err == nil {
			t.Error("expected error for bad header")
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		err := NewManager(newRegistry()).Load(strings.NewReader("CHO"))
		if err == nil {
			t.Error("expected error for truncated header")
		}
	})

	t.Run("NewerVersion", func(t *testing.T) {
		err := NewManager(newRegistry()).Apply(Preset{Version: 99})
		if err == nil {
			t.Error("expected error for newer version")
		}
	})

	t.Run("OtherPlugin", func(t *testing.T) {
		m := NewManager(newRegistry())
		m.SetPluginID("com.example.a")
		err := m.Apply(Preset{Version: 1, Plugin: "com.example.b"})
		if err == nil {
			t.Error("expected error for foreign preset")
		}
	})
}

func TestApplyIgnoresUnknown(t *testing.T) {
	r := newRegistry()
	m := NewManager(r)

	err := m.Apply(Preset{Version: 1, Values: map[string]float64{"Missing": 3, "Scale": 2}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := r.GetByName("Scale").GetPlainValue(); math.Abs(got-2) > 1e-9 {
		t.Errorf("Scale = %f, want 2", got)
	}
}

func TestDecodeTagged(t *testing.T) {
	m := NewManager(newRegistry())
	m.SetPluginID("com.example.a")

	var buf bytes.Buffer
	if err := m.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Plugin != "com.example.a" || p.Version != 1 {
		t.Errorf("decoded %+v", p)
	}
}
