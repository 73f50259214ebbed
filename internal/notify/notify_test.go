package notify

import (
	"testing"

	"github.com/llehouerou/mpressed/internal/track"
)

func TestPlayRecorded(t *testing.T) {
	id := track.Identity{Artist: "Simon & Garfunkel", Album: "Bookends", Title: "America"}

	n := PlayRecorded(id, 7)

	if n.Title != "Play recorded" {
		t.Errorf("Title = %q", n.Title)
	}
	want := "Simon &amp; Garfunkel – America\n<i>Bookends</i>"
	if n.Body != want {
		t.Errorf("Body = %q, want %q", n.Body, want)
	}
	if n.ReplacesID != 7 {
		t.Errorf("ReplacesID = %d, want 7", n.ReplacesID)
	}
	if n.Urgency != UrgencyLow {
		t.Errorf("Urgency = %d, want UrgencyLow", n.Urgency)
	}
}
