// Package generate writes remediated linear text to an output document
// artifact. The only supported format is DOCX, built directly as an OPC zip
// package with a minimal WordprocessingML payload.
package generate

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrWrite indicates the generated document could not be written to disk
var ErrWrite = errors.New("document write failed")

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>
`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>
`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`

const documentFooter = `</w:body>
</w:document>
`

// DocxWriter renders linear text to a DOCX file. Lines beginning with the
// "## " heading marker become bold, larger paragraphs; everything else is
// emitted as plain paragraphs, preserving line order.
type DocxWriter struct{}

// NewDocxWriter creates a new DOCX document writer
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// Write renders the text to outputPath. Filesystem failures are reported as
// ErrWrite; a partially written file is removed.
func (w *DocxWriter) Write(text, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("%w: output path cannot be empty", ErrWrite)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := w.writeArchive(f, text); err != nil {
		f.Close()
		os.Remove(outputPath)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	return nil
}

// writeArchive assembles the OPC zip package
func (w *DocxWriter) writeArchive(f *os.File, text string) error {
	zw := zip.NewWriter(f)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", w.documentXML(text)},
	}

	for _, part := range parts {
		entry, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create archive entry %s: %w", part.name, err)
		}
		if _, err := entry.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

// documentXML builds the main document part from the linear text, one
// paragraph per input line
func (w *DocxWriter) documentXML(text string) string {
	var b strings.Builder
	b.WriteString(documentHeader)

	for _, line := range strings.Split(text, "\n") {
		if heading, ok := strings.CutPrefix(line, "## "); ok {
			b.WriteString(headingParagraph(heading))
			continue
		}
		b.WriteString(plainParagraph(line))
	}

	b.WriteString(documentFooter)
	return b.String()
}

func headingParagraph(text string) string {
	return `<w:p><w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr><w:t xml:space="preserve">` +
		escapeXML(text) + `</w:t></w:r></w:p>` + "\n"
}

func plainParagraph(text string) string {
	if text == "" {
		return "<w:p/>\n"
	}
	return `<w:p><w:r><w:t xml:space="preserve">` +
		escapeXML(text) + `</w:t></w:r></w:p>` + "\n"
}

func escapeXML(s string) string {
	var b strings.Builder
	// xml.EscapeText only fails on writer errors, which strings.Builder
	// never returns
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
