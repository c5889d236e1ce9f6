package export

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarform/internal/cite"
	"github.com/pdiddy/scholarform/internal/layout"
	"github.com/pdiddy/scholarform/internal/render"
	"github.com/pdiddy/scholarform/pkg/types"
)

// innerText concatenates all character data below el.
func innerText(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch v := tok.(type) {
		case *etree.CharData:
			b.WriteString(v.Data)
		case *etree.Element:
			b.WriteString(innerText(v))
		}
	}
	return b.String()
}

var tocLineRe = regexp.MustCompile(`^- .+ \(p\. (\d+)\)$`)

// TestTargetsAgree renders one document through every page-aware target and
// checks that section order, bibliography order, and page numbers match.
func TestTargetsAgree(t *testing.T) {
	for _, s := range []types.AcademicStyle{types.StyleAPA, types.StyleMLA, types.StyleChicago, types.StyleCustom} {
		t.Run(string(s), func(t *testing.T) {
			doc := sampleDoc(s, true)
			plan := layout.Compute(doc)

			var wantTitles, wantPages []string
			for _, id := range plan.SectionOrder {
				for _, sec := range doc.Sections {
					if sec.ID == id {
						wantTitles = append(wantTitles, sec.Title)
					}
				}
				wantPages = append(wantPages, strconv.Itoa(plan.PageOf(id)))
			}
			wantPages = append(wantPages, strconv.Itoa(plan.BibliographyPage))
			var wantBib []string
			for _, c := range cite.Sorted(doc.Bibliography) {
				wantBib = append(wantBib, cite.FormatRuns(c, s).Plain())
			}

			// Print view.
			printed := render.Print(doc)
			var printTitles []string
			for _, div := range printed.FindElements("//div[@data-page]") {
				if div.SelectAttrValue("id", "") != "" {
					printTitles = append(printTitles, div.SelectElement("h1").Text())
				}
			}
			assert.Equal(t, wantTitles, printTitles, "print sections")
			var printPages []string
			for _, span := range printed.FindElements("//span[@class='toc-page']") {
				printPages = append(printPages, span.Text())
			}
			assert.Equal(t, wantPages, printPages, "print pages")
			var printBib []string
			for _, p := range printed.FindElements("//p[@class='citation']") {
				printBib = append(printBib, innerText(p))
			}
			assert.Equal(t, wantBib, printBib, "print bibliography")

			// Web view.
			web := render.Web(doc)
			var webTitles []string
			for _, sec := range web.FindElements("//section[@class='section']") {
				webTitles = append(webTitles, sec.SelectElement("h1").Text())
			}
			assert.Equal(t, wantTitles, webTitles, "web sections")
			var webBib []string
			for _, p := range web.FindElements("//p[@class='citation']") {
				webBib = append(webBib, innerText(p))
			}
			assert.Equal(t, wantBib, webBib, "web bibliography")

			// DOCX.
			res, err := DOCX(doc)
			require.NoError(t, err)
			body := docxParts(t, res.Data)["word/document.xml"]
			headings := styledTexts(body, StyleHeading1)
			require.NotEmpty(t, headings)
			assert.Equal(t, wantTitles, headings[:len(headings)-1], "docx sections")
			assert.Equal(t, wantBib, styledTexts(body, StyleBibliography), "docx bibliography")
			var docxPages []string
			for _, p := range body.FindElements("//w:p") {
				if p.FindElement("./w:pPr/w:tabs") == nil {
					continue
				}
				ts := p.FindElements(".//w:t")
				docxPages = append(docxPages, ts[len(ts)-1].Text())
			}
			assert.Equal(t, wantPages, docxPages, "docx pages")

			// Markdown.
			res, err = Markdown(doc)
			require.NoError(t, err)
			var mdTitles, mdPages, mdBib []string
			inBib := false
			for _, line := range strings.Split(string(res.Data), "\n") {
				switch {
				case strings.HasPrefix(line, "# "):
					title := strings.TrimPrefix(line, "# ")
					if inBib = title == headings[len(headings)-1]; !inBib {
						mdTitles = append(mdTitles, title)
					}
				case inBib && strings.HasPrefix(line, "- "):
					mdBib = append(mdBib, strings.ReplaceAll(strings.TrimPrefix(line, "- "), "*", ""))
				default:
					if m := tocLineRe.FindStringSubmatch(line); m != nil {
						mdPages = append(mdPages, m[1])
					}
				}
			}
			assert.Equal(t, wantTitles, mdTitles, "markdown sections")
			assert.Equal(t, wantPages, mdPages, "markdown pages")
			assert.Equal(t, wantBib, mdBib, "markdown bibliography")
		})
	}
}
