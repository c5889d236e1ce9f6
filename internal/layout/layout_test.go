package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarform/pkg/types"
)

func docWith(s types.AcademicStyle, showIndex bool, n int) types.Document {
	doc := types.Document{Style: s, ShowIndex: showIndex}
	for i := 1; i <= n; i++ {
		doc.Sections = append(doc.Sections, types.Section{
			ID:    fmt.Sprintf("section-%d", i),
			Title: fmt.Sprintf("Part %d", i),
		})
	}
	return doc
}

func pages(p Pagination) []int {
	out := make([]int, len(p.SectionOrder))
	for i, id := range p.SectionOrder {
		out[i] = p.PageOf(id)
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		style      types.AcademicStyle
		showIndex  bool
		sections   int
		wantTitle  bool
		wantTOC    int
		wantInline bool
		wantPages  []int
		wantBib    int
	}{
		{name: "apa with toc", style: types.StyleAPA, showIndex: true, sections: 3, wantTitle: true, wantTOC: 2, wantPages: []int{3, 4, 5}, wantBib: 7},
		{name: "apa without toc", style: types.StyleAPA, sections: 3, wantTitle: true, wantPages: []int{2, 3, 4}, wantBib: 6},
		{name: "chicago with toc", style: types.StyleChicago, showIndex: true, sections: 2, wantTitle: true, wantTOC: 2, wantPages: []int{3, 4}, wantBib: 6},
		{name: "mla without toc", style: types.StyleMLA, sections: 3, wantInline: true, wantPages: []int{1, 2, 3}, wantBib: 4},
		{name: "mla with toc", style: types.StyleMLA, showIndex: true, sections: 3, wantTOC: 1, wantPages: []int{2, 3, 4}, wantBib: 5},
		{name: "custom behaves like mla", style: types.StyleCustom, sections: 1, wantInline: true, wantPages: []int{1}, wantBib: 2},
		{name: "unknown style is custom", style: types.AcademicStyle("harvard"), sections: 1, wantInline: true, wantPages: []int{1}, wantBib: 2},
		{name: "no sections", style: types.StyleAPA, sections: 0, wantTitle: true, wantPages: []int{}, wantBib: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compute(docWith(tt.style, tt.showIndex, tt.sections))
			assert.Equal(t, tt.wantTitle, p.TitlePage)
			assert.Equal(t, tt.wantTOC, p.TOCPage)
			assert.Equal(t, tt.wantTOC > 0, p.HasTOC())
			assert.Equal(t, tt.wantInline, p.InlineHeader)
			assert.Equal(t, tt.wantPages, pages(p))
			assert.Equal(t, tt.wantBib, p.BibliographyPage)
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	doc := docWith(types.StyleChicago, true, 4)
	assert.Equal(t, Compute(doc), Compute(doc))
}

func TestComputeFollowsSectionOrder(t *testing.T) {
	doc := docWith(types.StyleAPA, false, 3)
	before := Compute(doc)

	doc.Sections[0], doc.Sections[2] = doc.Sections[2], doc.Sections[0]
	after := Compute(doc)

	require.Equal(t, []string{"section-3", "section-2", "section-1"}, after.SectionOrder)
	assert.Equal(t, before.PageOf("section-1"), after.PageOf("section-3"))
	assert.Equal(t, before.PageOf("section-3"), after.PageOf("section-1"))
	assert.Equal(t, before.BibliographyPage, after.BibliographyPage)
}
