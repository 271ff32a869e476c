package attendance

import "testing"

func TestPercentage(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    string
	}{
		{name: "zero total", present: 0, total: 0, want: "0.00"},
		{name: "zero present", present: 0, total: 10, want: "0.00"},
		{name: "three of four", present: 3, total: 4, want: "75.00"},
		{name: "one of three", present: 1, total: 3, want: "33.33"},
		{name: "two of three", present: 2, total: 3, want: "66.67"},
		{name: "full", present: 5, total: 5, want: "100.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentage(tt.present, tt.total); got != tt.want {
				t.Errorf("Percentage(%d, %d) = %q, want %q", tt.present, tt.total, got, tt.want)
			}
		})
	}
}

func TestBelowThreshold(t *testing.T) {
	tests := []struct {
		name      string
		present   int
		total     int
		threshold float64
		want      bool
	}{
		{name: "well below", present: 1, total: 3, threshold: 75, want: true},
		{name: "exactly at threshold", present: 3, total: 4, threshold: 75, want: false},
		{name: "above", present: 9, total: 10, threshold: 75, want: false},
		{name: "no sessions counts as below", present: 0, total: 0, threshold: 75, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BelowThreshold(tt.present, tt.total, tt.threshold); got != tt.want {
				t.Errorf("BelowThreshold(%d, %d, %v) = %v, want %v", tt.present, tt.total, tt.threshold, got, tt.want)
			}
		})
	}
}
