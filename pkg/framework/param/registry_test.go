package param

import (
	"testing"

	"github.com/justyntemme/chopgo/pkg/chop"
)

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry()
	r.Add(
		New(1, "Speed").Build(),
		New(2, "Scale").Build(),
		New(1, "Other").Build(), // duplicate ID
		New(3, "Speed").Build(), // duplicate name
	)

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if r.GetByIndex(1).Name != "Scale" {
		t.Errorf("GetByIndex(1) = %s, want Scale", r.GetByIndex(1).Name)
	}
	if r.GetByIndex(5) != nil || r.GetByIndex(-1) != nil {
		t.Error("GetByIndex out of range should be nil")
	}
	if r.GetByName("Scale") != r.Get(2) {
		t.Error("GetByName and Get disagree")
	}
	if r.GetByName("Missing") != nil {
		t.Error("GetByName(Missing) should be nil")
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Speed", true},
		{"Scale2", true},
		{"S", true},
		{"", false},
		{"speed", false},
		{"SpeedX", false},
		{"Sp eed", false},
		{"Sp_eed", false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAppendFloat(t *testing.T) {
	r := NewRegistry()

	var np chop.NumericParameter
	np.Name = "Speed"
	np.Label = "Speed"
	np.DefaultValues[0] = 1.0
	np.MinSliders[0] = -10.0
	np.MaxSliders[0] = 10.0

	if res := r.AppendFloat(np); res != chop.Success {
		t.Fatalf("AppendFloat() = %s", res)
	}
	if res := r.AppendFloat(np); res != chop.DuplicateName {
		t.Errorf("second AppendFloat() = %s, want duplicate name", res)
	}

	p := r.GetByName("Speed")
	if p == nil {
		t.Fatal("Speed not registered")
	}
	if p.Min != -10 || p.Max != 10 {
		t.Errorf("range = [%f, %f], want [-10, 10]", p.Min, p.Max)
	}
	if diff := p.GetPlainValue() - 1; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("default = %f, want 1", p.GetPlainValue())
	}

	np.Name = "bad"
	if res := r.AppendFloat(np); res != chop.InvalidName {
		t.Errorf("AppendFloat(bad) = %s, want invalid name", res)
	}
}

func TestAppendFloatClampAndDefaults(t *testing.T) {
	r := NewRegistry()

	var np chop.NumericParameter
	np.Name = "Gain"
	np.MinSliders[0] = 0
	np.MaxSliders[0] = 1
	np.ClampMaxes[0] = true
	np.MaxValues[0] = 4

	if res := r.AppendFloat(np); res != chop.Success {
		t.Fatalf("AppendFloat() = %s", res)
	}
	p := r.GetByName("Gain")
	if p.Max != 4 {
		t.Errorf("clamped max = %f, want 4", p.Max)
	}
	if p.Label != "Gain" {
		t.Errorf("empty label should fall back to name, got %q", p.Label)
	}

	var zero chop.NumericParameter
	zero.Name = "Amount"
	r.AppendFloat(zero)
	if a := r.GetByName("Amount"); a.Min != 0 || a.Max != 1 {
		t.Errorf("unset sliders gave range [%f, %f], want [0, 1]", a.Min, a.Max)
	}
}

func TestAppendMenu(t *testing.T) {
	names := []string{"Sine", "Square", "Ramp"}

	t.Run("Success", func(t *testing.T) {
		r := NewRegistry()
		sp := chop.StringParameter{Name: "Shape", Label: "Shape", DefaultValue: "Square"}
		if res := r.AppendMenu(sp, names, names); res != chop.Success {
			t.Fatalf("AppendMenu() = %s", res)
		}
		p := r.GetByName("Shape")
		if p.Kind != Menu || p.MenuName() != "Square" {
			t.Errorf("menu = %s/%s, want menu/Square", p.Kind, p.MenuName())
		}
	})

	t.Run("InvalidSize", func(t *testing.T) {
		r := NewRegistry()
		sp := chop.StringParameter{Name: "Shape"}
		if res := r.AppendMenu(sp, names, names[:2]); res != chop.InvalidSize {
			t.Errorf("AppendMenu() = %s, want invalid size", res)
		}
		if res := r.AppendMenu(sp, nil, nil); res != chop.InvalidSize {
			t.Errorf("AppendMenu(nil) = %s, want invalid size", res)
		}
	})

	t.Run("InvalidDefault", func(t *testing.T) {
		r := NewRegistry()
		sp := chop.StringParameter{Name: "Shape", DefaultValue: "Triangle"}
		if res := r.AppendMenu(sp, names, names); res != chop.InvalidDefault {
			t.Errorf("AppendMenu() = %s, want invalid default", res)
		}
	})
}

func TestAppendPulse(t *testing.T) {
	r := NewRegistry()
	r.AppendFloat(chop.NumericParameter{Name: "Speed"})

	if res := r.AppendPulse(chop.NumericParameter{Name: "Reset"}); res != chop.Success {
		t.Fatalf("AppendPulse() = %s", res)
	}
	p := r.GetByName("Reset")
	if p.Kind != Pulse {
		t.Errorf("Kind = %s, want pulse", p.Kind)
	}
	if p.ID != 1 {
		t.Errorf("ID = %d, want 1", p.ID)
	}
}
