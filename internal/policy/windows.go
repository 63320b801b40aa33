package policy

import "sort"

// normalizeWindows returns a stable copy of the windows sorted most
// time-restrictive first (descending HoursBeforeService). Two windows with the
// same threshold are ordered by ascending refund percentage, so the less
// generous of the pair wins the tie deterministically.
func normalizeWindows(windows []CancellationWindow) []CancellationWindow {
	normalized := make([]CancellationWindow, len(windows))
	copy(normalized, windows)

	sort.SliceStable(normalized, func(i, j int) bool {
		if normalized[i].HoursBeforeService != normalized[j].HoursBeforeService {
			return normalized[i].HoursBeforeService > normalized[j].HoursBeforeService
		}
		return normalized[i].RefundPercentage < normalized[j].RefundPercentage
	})

	return normalized
}

// selectWindow picks the applicable window for the given lead time: the first
// normalized window whose threshold has not yet been crossed, i.e. the most
// generous window the caller still qualifies for. It reports false when the
// lead time is below every threshold, meaning even the most permissive
// deadline has been missed.
func selectWindow(windows []CancellationWindow, hoursBeforeService float64) (CancellationWindow, bool) {
	for _, w := range normalizeWindows(windows) {
		if w.HoursBeforeService <= hoursBeforeService {
			return w, true
		}
	}
	return CancellationWindow{}, false
}
