package segment

import (
	"strconv"
	"strings"

	"github.com/pdiddy/scholarform/pkg/types"
)

const idPrefix = "section-"

func sectionID(n int) string {
	return idPrefix + strconv.Itoa(n)
}

// NormalizeIDs returns a copy of sections whose identifiers are unique.
// Empty or already-used identifiers are replaced with the lowest free
// "section-N" token, scanning in document order so the first occurrence of
// a colliding identifier keeps it.
func NormalizeIDs(sections []types.Section) []types.Section {
	out := make([]types.Section, len(sections))
	copy(out, sections)

	used := make(map[string]bool, len(out))
	var pending []int
	for i := range out {
		id := strings.TrimSpace(out[i].ID)
		if id == "" || used[id] {
			pending = append(pending, i)
			continue
		}
		out[i].ID = id
		used[id] = true
	}

	next := 1
	for _, i := range pending {
		for used[sectionID(next)] {
			next++
		}
		out[i].ID = sectionID(next)
		used[out[i].ID] = true
	}
	return out
}
