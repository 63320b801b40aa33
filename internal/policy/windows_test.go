package policy

import "testing"

func TestNormalizeWindowsOrdering(t *testing.T) {
	windows := []CancellationWindow{
		{HoursBeforeService: 4, RefundPercentage: 50},
		{HoursBeforeService: 48, RefundPercentage: 100},
		{HoursBeforeService: 24, RefundPercentage: 75},
	}

	normalized := normalizeWindows(windows)

	want := []float64{48, 24, 4}
	for i, threshold := range want {
		if normalized[i].HoursBeforeService != threshold {
			t.Errorf("position %d: threshold = %v, want %v", i, normalized[i].HoursBeforeService, threshold)
		}
	}

	// The input slice must stay untouched.
	if windows[0].HoursBeforeService != 4 {
		t.Error("normalizeWindows mutated its input")
	}
}

func TestNormalizeWindowsTieBreak(t *testing.T) {
	// Identical thresholds resolve to the lower percentage, independent of
	// input order.
	inputs := [][]CancellationWindow{
		{
			{HoursBeforeService: 24, RefundPercentage: 100},
			{HoursBeforeService: 24, RefundPercentage: 50},
		},
		{
			{HoursBeforeService: 24, RefundPercentage: 50},
			{HoursBeforeService: 24, RefundPercentage: 100},
		},
	}

	for i, windows := range inputs {
		selected, ok := selectWindow(windows, 30)
		if !ok {
			t.Fatalf("input %d: expected a match", i)
		}
		if selected.RefundPercentage != 50 {
			t.Errorf("input %d: tie resolved to %v%%, want 50%%", i, selected.RefundPercentage)
		}
	}
}

func TestSelectWindow(t *testing.T) {
	windows := []CancellationWindow{
		{HoursBeforeService: 4, RefundPercentage: 50},
		{HoursBeforeService: 24, RefundPercentage: 100},
	}

	tests := []struct {
		name          string
		hours         float64
		wantMatch     bool
		wantThreshold float64
	}{
		{"well before both thresholds", 30, true, 24},
		{"exactly on a threshold", 24, true, 24},
		{"between thresholds", 10, true, 4},
		{"below every threshold", 3, false, 0},
		{"service already passed", -2, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, ok := selectWindow(windows, tt.hours)
			if ok != tt.wantMatch {
				t.Fatalf("match = %v, want %v", ok, tt.wantMatch)
			}
			if ok && selected.HoursBeforeService != tt.wantThreshold {
				t.Errorf("threshold = %v, want %v", selected.HoursBeforeService, tt.wantThreshold)
			}
		})
	}
}

func TestSelectWindowZeroThresholdAlwaysOpenBeforeService(t *testing.T) {
	windows := []CancellationWindow{
		{HoursBeforeService: 0, RefundPercentage: 25},
	}

	if _, ok := selectWindow(windows, 0.1); !ok {
		t.Error("a zero-hour threshold should match any time before service")
	}
	if _, ok := selectWindow(windows, -0.1); ok {
		t.Error("a zero-hour threshold should not match after service")
	}
}

func TestSelectWindowEmptyPolicy(t *testing.T) {
	if _, ok := selectWindow(nil, 100); ok {
		t.Error("no windows means no match")
	}
}
