package surface

import (
	"context"
	"errors"
	"strings"
	"time"
)

// BlankURL is the neutral target a hidden preview navigates to.
const BlankURL = "about:blank"

// AbortedMarker is carried by every error produced when a load is
// interrupted by a later Stop or Navigate.
const AbortedMarker = "ERR_ABORTED (-3)"

// ErrAborted reports a navigation superseded by Stop or a newer Navigate.
var ErrAborted = errors.New("navigation aborted: " + AbortedMarker)

// Surface is an isolated rendering surface for external content.
type Surface interface {
	// Stop interrupts the in-flight navigation, if any.
	Stop()
	SetAudioMuted(muted bool)
	// Navigate loads url and blocks until it commits or fails. A load
	// superseded by Stop or another Navigate fails with ErrAborted.
	// Navigating to BlankURL never waits on the network.
	Navigate(ctx context.Context, url string) error
	CurrentURL() string
}

// Snapshotter is implemented by surfaces that can report what they display.
type Snapshotter interface {
	Document() Document
}

// Document is the committed content of a surface.
type Document struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	HTML        string    `json:"html"`
	ContentType string    `json:"content_type"`
	Muted       bool      `json:"muted"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// IsAborted reports whether err is the well-known aborted-navigation failure.
// Errors from other surface implementations are matched by marker text.
func IsAborted(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrAborted) || strings.Contains(err.Error(), AbortedMarker)
}
