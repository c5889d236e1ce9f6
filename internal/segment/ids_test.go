package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholarform/pkg/types"
)

func ids(sections []types.Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}

func TestNormalizeIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "unique ids untouched", in: []string{"intro", "methods"}, want: []string{"intro", "methods"}},
		{name: "empty ids regenerated", in: []string{"", "", "x"}, want: []string{"section-1", "section-2", "x"}},
		{name: "first occurrence keeps id", in: []string{"a", "a", "a"}, want: []string{"a", "section-1", "section-2"}},
		{name: "skips ids already taken", in: []string{"section-1", "", "section-1"}, want: []string{"section-1", "section-2", "section-3"}},
		{name: "whitespace counts as empty", in: []string{"  "}, want: []string{"section-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]types.Section, len(tt.in))
			for i, id := range tt.in {
				in[i] = types.Section{ID: id, Title: "T"}
			}
			got := NormalizeIDs(in)
			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, tt.in, ids(in), "input must not be modified")
		})
	}
}
