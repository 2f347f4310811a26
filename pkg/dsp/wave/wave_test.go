package wave

import (
	"math"
	"testing"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name   string
		shape  Shape
		offset float64
		want   float64
	}{
		{"sine zero", Sine, 0, 0},
		{"sine quarter", Sine, math.Pi / 2, 1},
		{"square low", Square, 0.25, 0},
		{"square at half", Square, 0.5, 0},
		{"square high", Square, 0.75, 1},
		{"square wraps", Square, 1.75, 1},
		{"square negative", Square, -0.75, 1},
		{"ramp", Ramp, 0.25, 0.25},
		{"ramp at boundary", Ramp, 1.0, 0},
		{"ramp at two", Ramp, 2.0, 0},
		{"ramp negative", Ramp, -0.25, 0.25},
		{"unknown", Shape(7), 0.3, 0},
		{"negative enum", Shape(-1), 0.3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Value(tt.shape, tt.offset)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Value(%s, %f) = %f, want %f", tt.shape, tt.offset, got, tt.want)
			}
		})
	}
}

func TestFill(t *testing.T) {
	buf := make([]float64, 4)
	next := Fill(buf, Ramp, 0, 0.25)

	want := []float64{0, 0.25, 0.5, 0.75}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Errorf("buf[%d] = %f, want %f", i, buf[i], want[i])
		}
	}
	if next != 1.0 {
		t.Errorf("next offset = %f, want 1", next)
	}

	if got := Fill(nil, Sine, 3, 1); got != 3 {
		t.Errorf("Fill on empty buffer should not advance, got %f", got)
	}
}

func TestScaleAndNarrow(t *testing.T) {
	src := []float64{1, -2, 0.5}
	dst := make([]float64, 3)
	Scale(dst, src, 2)

	want := []float64{2, -4, 1}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %f, want %f", i, dst[i], want[i])
		}
	}

	out := make([]float32, 2)
	Narrow(out, dst)
	if out[0] != 2 || out[1] != -4 {
		t.Errorf("Narrow = %v", out)
	}
}

func TestShapeNames(t *testing.T) {
	for i, name := range Names {
		s, err := ParseShape(name)
		if err != nil || int(s) != i {
			t.Errorf("ParseShape(%s) = %d, %v", name, s, err)
		}
		if s.String() != name {
			t.Errorf("Shape(%d).String() = %s", i, s.String())
		}
	}

	if s, err := ParseShape(" ramp "); err != nil || s != Ramp {
		t.Errorf("ParseShape(ramp) = %s, %v", s, err)
	}
	if _, err := ParseShape("triangle"); err == nil {
		t.Error("expected error for unknown shape")
	}
	if got := Shape(5).String(); got != "Shape(5)" {
		t.Errorf("Shape(5).String() = %s", got)
	}
}
