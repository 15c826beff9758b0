package scoring

import (
	"testing"
)

func TestCalculateWeightedScore(t *testing.T) {
	tests := []struct {
		name   string
		raw    float64
		weight float64
		want   float64
	}{
		{"quarter weight", 8, 25, 2.00},
		{"thirty percent of max", 10, 30, 3.00},
		{"zero weight", 5, 0, 0.00},
		{"fractional score", 7.5, 20, 1.50},
		{"rounds half up", 6.5, 33.33, 2.17}, // 2.16645
		{"exact half", 2.675, 100, 2.68},
		{"thirds", 7, 33.33, 2.33}, // 2.3331
		{"minimum", 1, 0.01, 0.00},
		{"maximum", 10, 100, 10.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateWeightedScore(tt.raw, tt.weight)
			if got != tt.want {
				t.Errorf("CalculateWeightedScore(%v, %v) = %v, want %v", tt.raw, tt.weight, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalScore(t *testing.T) {
	tests := []struct {
		name     string
		weighted []float64
		want     float64
	}{
		{"four parts", []float64{2.0, 3.0, 1.5, 2.5}, 9.00},
		{"empty", []float64{}, 0.00},
		{"nil", nil, 0.00},
		{"tenths without drift", []float64{0.1, 0.2}, 0.3},
		{"many small parts", []float64{0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01, 0.01}, 0.1},
		{"perfect", []float64{4.0, 3.0, 2.0, 1.0}, 10.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotalScore(tt.weighted)
			if got != tt.want {
				t.Errorf("CalculateTotalScore(%v) = %v, want %v", tt.weighted, got, tt.want)
			}
		})
	}
}

func TestCalculatorIsDeterministic(t *testing.T) {
	weighted := []float64{2.17, 3.33, 1.01, 0.99}
	first := CalculateTotalScore(weighted)
	for i := 0; i < 100; i++ {
		if got := CalculateTotalScore(weighted); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
	if CalculateWeightedScore(6.5, 33.33) != CalculateWeightedScore(6.5, 33.33) {
		t.Error("weighted score not deterministic")
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.005); got != 1.01 {
		t.Errorf("Round2(1.005) = %v, want 1.01", got)
	}
	if got := Round2(-1.005); got != -1.01 {
		t.Errorf("Round2(-1.005) = %v, want -1.01", got)
	}
	if got := Round2(3); got != 3 {
		t.Errorf("Round2(3) = %v, want 3", got)
	}
}
