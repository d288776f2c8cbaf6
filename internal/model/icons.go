package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconOK     = "✓" // transformed
	IconFailed = "✗" // parse failure
	IconEmpty  = "∅" // transformed, no exports
	IconExport = "→" // export list entry
	IconWrap   = "◆" // wrapped mode marker
)

// StatusIcon picks the list icon for a result.
func StatusIcon(r Result) string {
	switch {
	case !r.OK():
		return IconFailed
	case len(r.Exports) == 0:
		return IconEmpty
	default:
		return IconOK
	}
}
