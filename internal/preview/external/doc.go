// Package external previews arbitrary web pages through a rendering surface.
//
// Show is synchronous for state (visible, current URL, cleared aspect ratio,
// stopped and muted surface) and asynchronous for content: a goroutine
// resolves the link, stops the surface again and navigates to the result.
// Nothing is re-checked after resolution, so when two Shows race the last
// navigation to land wins. Loads interrupted by a newer Show or a Hide fail
// with surface.ErrAborted and are not logged; other failures are logged as
// warnings.
package external
