package equal

import (
	"math"
	"testing"
)

func TestSame(t *testing.T) {
	nan := math.NaN()
	shared := []int{1, 2}
	m := map[string]int{"a": 1}
	type point struct{ X, Y int }

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"ints", 1, 1, true},
		{"different ints", 1, 2, false},
		{"int vs float", 1, 1.0, false},
		{"strings", "a", "a", true},
		{"nil nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"nan nan", nan, nan, true},
		{"nan float32", float32(nan), float32(nan), true},
		{"same slice", shared, shared, true},
		{"equal slices", []int{1, 2}, []int{1, 2}, false},
		{"resliced", shared, shared[:1], false},
		{"same map", m, m, true},
		{"struct values", point{1, 2}, point{1, 2}, true},
		{"funcs", func() {}, func() {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Same(tt.a, tt.b); got != tt.want {
				t.Errorf("Same(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStrictNaN(t *testing.T) {
	nan := math.NaN()
	if Strict(nan, nan) {
		t.Error("Strict(NaN, NaN) = true, want false")
	}
	if !Changed(1, 2) {
		t.Error("Changed(1, 2) = false, want true")
	}
	if Changed(nan, nan) {
		t.Error("Changed(NaN, NaN) = true, want false")
	}
}
