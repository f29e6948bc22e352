package catalog

// NearBottom reports whether the viewport's last visible row (exclusive
// index visibleEnd) is within threshold rows of the end of the rendered
// window.
func NearBottom(visibleEnd, rendered, threshold int) bool {
	if rendered == 0 {
		return false
	}
	return rendered-visibleEnd <= threshold
}
