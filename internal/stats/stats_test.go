package stats

import (
	"math"
	"testing"

	"github.com/llehouerou/mpressed/internal/store"
)

// fixture: artist A has three songs on album X, artist B one song on album Y.
func fixture() store.Snapshot {
	return store.Snapshot{
		Songs: []store.Song{
			{ID: 1, Artist: "A", Album: "X", Title: "a1"},
			{ID: 2, Artist: "A", Album: "X", Title: "a2"},
			{ID: 3, Artist: "A", Album: "X", Title: "a3"},
			{ID: 4, Artist: "B", Album: "Y", Title: "b1"},
		},
		Counts: []store.PlayCount{
			{SongID: 1, Date: "2024-01-01", Plays: 2},
			{SongID: 2, Date: "2024-01-01", Plays: 2},
			{SongID: 3, Date: "2024-01-02", Plays: 2},
			{SongID: 4, Date: "2024-01-02", Plays: 3},
			{SongID: 1, Date: "2024-01-03", Plays: 1},
		},
	}
}

func TestBuild_Ungrouped(t *testing.T) {
	rows := Build(fixture(), Ungrouped)

	want := []struct {
		title string
		plays int
	}{
		{"a1", 3},
		{"b1", 3},
		{"a2", 2},
		{"a3", 2},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Title != w.title || rows[i].Plays != w.plays {
			t.Errorf("rows[%d] = %s/%d, want %s/%d", i, rows[i].Title, rows[i].Plays, w.title, w.plays)
		}
		if rows[i].Kind != Ungrouped {
			t.Errorf("rows[%d].Kind = %v", i, rows[i].Kind)
		}
	}
}

func TestBuild_ByDate(t *testing.T) {
	rows := Build(fixture(), ByDate)

	want := map[string]int{"2024-01-01": 4, "2024-01-02": 5, "2024-01-03": 1}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for _, r := range rows {
		if r.Plays != want[r.Date] {
			t.Errorf("%s plays = %d, want %d", r.Date, r.Plays, want[r.Date])
		}
	}
	if rows[0].Date != "2024-01-02" {
		t.Errorf("first row = %s, want the busiest date", rows[0].Date)
	}
}

func TestBuild_ByArtistWeighted(t *testing.T) {
	rows := Build(fixture(), ByArtist)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// A: 7 plays over 3 songs; B: 3 plays over 1 song.
	if rows[0].Artist != "A" || rows[0].Plays != 7 {
		t.Errorf("rows[0] = %+v, want A with 7 plays", rows[0])
	}

	wA := 7.0 / 3.0
	wB := 3.0
	if got, want := rows[0].Share, wA/(wA+wB); math.Abs(got-want) > 1e-9 {
		t.Errorf("share(A) = %v, want %v", got, want)
	}
	if got, want := rows[1].Share, wB/(wA+wB); math.Abs(got-want) > 1e-9 {
		t.Errorf("share(B) = %v, want %v", got, want)
	}
}

func TestBuild_WeightedShareSumsToOne(t *testing.T) {
	snaps := []store.Snapshot{fixture(), largeFixture()}
	for _, snap := range snaps {
		for _, kind := range []Kind{ByArtist, ByAlbum} {
			rows := Build(snap, kind)
			if len(rows) == 0 {
				t.Fatalf("%v: empty view", kind)
			}
			var sum float64
			for _, r := range rows {
				sum += r.Share
			}
			if math.Abs(sum-1) > 1e-6 {
				t.Errorf("%v: share sum = %v, want 1", kind, sum)
			}
		}
	}
}

func largeFixture() store.Snapshot {
	var snap store.Snapshot
	artists := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"}
	id := int64(0)
	for ai, a := range artists {
		for s := 0; s <= ai*2; s++ {
			id++
			snap.Songs = append(snap.Songs, store.Song{
				ID: id, Artist: a, Album: a + " LP" + string(rune('1'+s%2)), Title: "t",
			})
			snap.Counts = append(snap.Counts, store.PlayCount{
				SongID: id, Date: "2024-02-0" + string(rune('1'+s%7)), Plays: 1 + (int(id)*7)%11,
			})
		}
	}
	return snap
}

func TestBuild_Empty(t *testing.T) {
	for _, kind := range []Kind{Ungrouped, ByDate, ByArtist, ByAlbum} {
		if rows := Build(store.Snapshot{}, kind); len(rows) != 0 {
			t.Errorf("%v: rows = %d, want 0", kind, len(rows))
		}
	}
}

func TestBuild_TiesBreakByKey(t *testing.T) {
	snap := store.Snapshot{
		Songs: []store.Song{
			{ID: 1, Artist: "Zed", Album: "Z", Title: "z"},
			{ID: 2, Artist: "Amy", Album: "A", Title: "a"},
		},
		Counts: []store.PlayCount{
			{SongID: 1, Date: "2024-01-01", Plays: 1},
			{SongID: 2, Date: "2024-01-01", Plays: 1},
		},
	}
	rows := Build(snap, ByArtist)
	if rows[0].Artist != "Amy" {
		t.Errorf("rows[0] = %s, want Amy", rows[0].Artist)
	}
}

func TestSortByShare(t *testing.T) {
	rows := Build(fixture(), ByArtist)
	SortByShare(rows)
	if rows[0].Artist != "B" {
		t.Errorf("top share = %s, want B (single song played 3 times)", rows[0].Artist)
	}
}

func TestTimeline(t *testing.T) {
	rows := Timeline(fixture())
	dates := make([]string, len(rows))
	for i, r := range rows {
		dates[i] = r.Date
	}
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}
}

func TestArtists(t *testing.T) {
	got := Artists(fixture())
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("Artists() = %v, want [A B]", got)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(Build(fixture(), Ungrouped)); got != 10 {
		t.Errorf("Total() = %d, want 10", got)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{Ungrouped: "None", ByDate: "Date", ByArtist: "Artist", ByAlbum: "Album"}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
