package livelist

// DefaultBottomThreshold is how close to the bottom, in pixels, a
// viewport must be for a live update to pin it back to the bottom.
const DefaultBottomThreshold = 100

// ScrollPolicy decides whether a view should jump to the newest row after
// a live update. The distance must be captured before the update is
// applied so that a reader scrolled up into history is never yanked down.
type ScrollPolicy struct {
	// BottomThreshold in pixels; zero means DefaultBottomThreshold.
	BottomThreshold float64
}

// ShouldPin reports whether the view should scroll to the bottom.
// distanceFromBottom is the viewport's distance before the update;
// wasEmpty marks the first load, which always pins.
func (p ScrollPolicy) ShouldPin(distanceFromBottom float64, wasEmpty bool) bool {
	if wasEmpty {
		return true
	}
	threshold := p.BottomThreshold
	if threshold <= 0 {
		threshold = DefaultBottomThreshold
	}
	return distanceFromBottom <= threshold
}
