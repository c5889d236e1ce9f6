package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

const (
	docxBody = "word/document.xml"
	docxCore = "docProps/core.xml"

	// maxPartSize caps how much of one package part is decompressed.
	maxPartSize = 64 << 20
)

// ExtractDOCX returns the paragraph text of a WordprocessingML package, one
// line per paragraph, and the dc:title and dc:creator core properties.
func ExtractDOCX(data []byte) (Extraction, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: opening DOCX package: %v", ErrUninterpretable, err)
	}

	body, err := readPart(zr, docxBody)
	if err != nil {
		return Extraction{}, err
	}
	if body == nil {
		return Extraction{}, fmt.Errorf("%w: %s missing", ErrUninterpretable, docxBody)
	}

	ex := Extraction{Format: FormatDOCX}
	if ex.Text, err = docxText(body); err != nil {
		return Extraction{}, err
	}

	core, err := readPart(zr, docxCore)
	if err != nil {
		return Extraction{}, err
	}
	if core != nil {
		ex.Title, ex.Author = docxCoreProps(core)
	}
	return ex, nil
}

// readPart returns the named part, or nil when the package lacks it.
func readPart(zr *zip.Reader, name string) (*etree.Document, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrUnreadable, name, err)
		}
		defer rc.Close()

		doc := etree.NewDocument()
		if _, err := doc.ReadFrom(io.LimitReader(rc, maxPartSize)); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %v", ErrUninterpretable, name, err)
		}
		return doc, nil
	}
	return nil, nil
}

func docxText(doc *etree.Document) (string, error) {
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("%w: empty %s", ErrUninterpretable, docxBody)
	}

	var b strings.Builder
	for _, p := range root.FindElements("//w:p") {
		if level := headingLevel(p); level > 0 {
			// Keep headings recognisable to the Markdown segmenter.
			b.WriteString(strings.Repeat("#", level) + " ")
		}
		for _, el := range p.FindElements(".//*") {
			switch el.FullTag() {
			case "w:t":
				b.WriteString(el.Text())
			case "w:tab":
				b.WriteString("\t")
			case "w:br":
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// headingLevel returns 1 to 3 for paragraphs styled Heading1 to Heading3,
// else 0.
func headingLevel(p *etree.Element) int {
	style := p.FindElement("./w:pPr/w:pStyle")
	if style == nil {
		return 0
	}
	switch strings.ToLower(style.SelectAttrValue("w:val", "")) {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	}
	return 0
}

func docxCoreProps(doc *etree.Document) (title, author string) {
	if el := doc.FindElement("//dc:title"); el != nil {
		title = el.Text()
	}
	if el := doc.FindElement("//dc:creator"); el != nil {
		author = el.Text()
	}
	return title, author
}
