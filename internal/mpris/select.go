package mpris

import (
	"strings"

	"github.com/llehouerou/mpressed/internal/track"
)

// candidate is a media player found on the bus.
type candidate struct {
	busName  string
	identity string
	status   track.Status
}

// choose picks the player to track. Configured identities are tried in
// order; with none configured, a playing player wins over an idle one.
func choose(cands []candidate, identities []string) (candidate, bool) {
	for _, want := range identities {
		for _, c := range cands {
			if strings.EqualFold(c.identity, want) {
				return c, true
			}
		}
	}
	if len(identities) > 0 || len(cands) == 0 {
		return candidate{}, false
	}

	for _, c := range cands {
		if c.status == track.Playing {
			return c, true
		}
	}
	return cands[0], true
}
