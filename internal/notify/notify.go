// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"html"

	"github.com/llehouerou/mpressed/internal/track"
)

const (
	appName  = "mpressed"
	appTitle = "mpressed"

	// playTimeout is how long a play notification stays on screen, in ms.
	playTimeout = 4000
)

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// PlayRecorded builds the notification shown when a play is committed.
// replaces is the ID of the previous one so that they do not pile up.
func PlayRecorded(id track.Identity, replaces uint32) Notification {
	return Notification{
		Title:      "Play recorded",
		Body:       html.EscapeString(id.Artist+" – "+id.Title) + "\n<i>" + html.EscapeString(id.Album) + "</i>",
		Icon:       "audio-x-generic",
		Timeout:    playTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}
