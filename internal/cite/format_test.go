// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholarform/pkg/types"
)

var hovland = types.Citation{
	ID:       6,
	Authors:  []string{"Hovland, C. I.", "Janis, I. L.", "Kelley, H. H."},
	Year:     "1953",
	Title:    "Communication and Persuasion",
	Source:   "Yale University Press",
	Location: "New Haven, CT",
	Note:     "(Source Credibility Theory)",
	Type:     types.CitationBook,
}

var lou = types.Citation{
	ID:      8,
	Authors: []string{"Lou, C.", "Yuan, S."},
	Year:    "2019",
	Title:   "Influencer marketing",
	Source:  "Journal of Interactive Advertising",
	Type:    types.CitationJournal,
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		citation types.Citation
		style    types.AcademicStyle
		want     string
	}{
		{
			name:     "APA with location and note",
			citation: hovland,
			style:    types.StyleAPA,
			want:     "Hovland, C. I., Janis, I. L. & Kelley, H. H. (1953). Communication and Persuasion. <i>Yale University Press</i>, New Haven, CT. (Source Credibility Theory)",
		},
		{
			name:     "APA two authors",
			citation: lou,
			style:    types.StyleAPA,
			want:     "Lou, C. & Yuan, S. (2019). Influencer marketing. <i>Journal of Interactive Advertising</i>.",
		},
		{
			name:     "MLA does not double the author period",
			citation: lou,
			style:    types.StyleMLA,
			want:     `Lou, C. & Yuan, S. "Influencer marketing." <i>Journal of Interactive Advertising</i>, 2019.`,
		},
		{
			name:     "MLA with location",
			citation: hovland,
			style:    types.StyleMLA,
			want:     `Hovland, C. I., Janis, I. L. & Kelley, H. H. "Communication and Persuasion." <i>Yale University Press</i>, 1953, New Haven, CT. (Source Credibility Theory)`,
		},
		{
			name:     "Chicago with location",
			citation: hovland,
			style:    types.StyleChicago,
			want:     `Hovland, C. I., Janis, I. L. & Kelley, H. H. 1953. "Communication and Persuasion." <i>Yale University Press</i>. New Haven, CT. (Source Credibility Theory)`,
		},
		{
			name:     "Custom omits source",
			citation: lou,
			style:    types.StyleCustom,
			want:     "Lou, C. & Yuan, S. (2019). Influencer marketing.",
		},
		{
			name:     "unknown style formats as Custom",
			citation: lou,
			style:    "Vancouver",
			want:     "Lou, C. & Yuan, S. (2019). Influencer marketing.",
		},
		{
			name: "single author without trailing period",
			citation: types.Citation{
				Authors: []string{"Plato"},
				Year:    "2000",
				Title:   "Republic?",
				Source:  "Penguin",
			},
			style: types.StyleMLA,
			want:  `Plato. "Republic?" <i>Penguin</i>, 2000.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.citation, tt.style))
		})
	}
}

func TestFormatRuns(t *testing.T) {
	runs := FormatRuns(lou, types.StyleAPA)
	assert.Equal(t, Runs{
		{Text: "Lou, C. & Yuan, S. (2019). Influencer marketing. "},
		{Text: "Journal of Interactive Advertising", Italic: true},
		{Text: "."},
	}, runs)

	assert.Equal(t, "Lou, C. & Yuan, S. (2019). Influencer marketing. Journal of Interactive Advertising.", runs.Plain())
	assert.Equal(t, "Lou, C. & Yuan, S. (2019). Influencer marketing. *Journal of Interactive Advertising*.", runs.Markdown())
}

func TestAuthorString(t *testing.T) {
	assert.Equal(t, "", AuthorString(nil))
	assert.Equal(t, "Smith, J.", AuthorString([]string{"Smith, J."}))
	assert.Equal(t, "Smith, J. & Doe, A.", AuthorString([]string{"Smith, J.", "Doe, A."}))
	assert.Equal(t, "A, B & C", AuthorString([]string{"A", "B", "C"}))
}
