package utils

import "testing"

func TestPercentile(t *testing.T) {
	samples := []float64{10, 20, 30, 40, 50}

	p95 := Percentile(samples, 95)
	if p95 < 40 {
		t.Fatalf("expected percentile >= 40, got %v", p95)
	}
	if min := Percentile(samples, 0); min != 10 {
		t.Fatalf("expected min sample, got %v", min)
	}
	if max := Percentile(samples, 100); max != 50 {
		t.Fatalf("expected max sample, got %v", max)
	}
}

func TestPercentileEmpty(t *testing.T) {
	if got := Percentile(nil, 95); got != 0 {
		t.Fatalf("expected zero for empty samples, got %v", got)
	}
}

func TestPercentileLeavesInputUnsorted(t *testing.T) {
	samples := []float64{50, 10, 30}
	Percentile(samples, 50)
	if samples[0] != 50 || samples[1] != 10 || samples[2] != 30 {
		t.Fatalf("input slice was reordered: %v", samples)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Fatalf("expected mean 4, got %v", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("expected zero mean for empty samples, got %v", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(99.61416666); got != 99.61 {
		t.Fatalf("expected 99.61, got %v", got)
	}
	if got := Round2(95.3703703); got != 95.37 {
		t.Fatalf("expected 95.37, got %v", got)
	}
}
