package render

import "fmt"

// Diagnostics accumulates the degradations a render went through. Every
// silent fallback in the pipeline (font unavailable, filter skipped, WebP
// unavailable) lands here as a typed event so callers and tests can assert
// on the degradation path instead of scraping logs.
type Diagnostics struct {
	events []string
}

// FontFallback records that a declared custom font could not be used.
func (d *Diagnostics) FontFallback(family string, err error) {
	d.events = append(d.events, fmt.Sprintf("font %q unavailable, using declared family: %v", family, err))
}

// FilterSkipped records that an element's filter pass was dropped.
func (d *Diagnostics) FilterSkipped(filter string, err error) {
	d.events = append(d.events, fmt.Sprintf("filter %q skipped: %v", filter, err))
}

// EncodeFallback records that WebP encoding was unavailable or failed.
func (d *Diagnostics) EncodeFallback() {
	d.events = append(d.events, "webp unavailable, encoded as png")
}

// Events returns the accumulated event log in order.
func (d *Diagnostics) Events() []string {
	return d.events
}

// Degraded reports whether any fallback fired.
func (d *Diagnostics) Degraded() bool {
	return len(d.events) > 0
}
