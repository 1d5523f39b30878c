package extract_engine

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/Resumelens/internal/core"
	"github.com/markdave123-py/Resumelens/internal/models"
)

// processDocx walks word/document.xml directly: all paragraphs in
// document order, then every table row flattened to one line with
// non-empty cells joined by " | ". No native page concept, so
// PageCount is 1.
func (e *Engine) processDocx(path string) (*models.DocumentRecord, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open docx container: %v", core.ErrUnsupportedFormat, err)
	}
	defer reader.Close()

	content, err := readDocumentXML(&reader.Reader)
	if err != nil {
		return nil, err
	}

	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse document.xml: %v", core.ErrUnsupportedFormat, err)
	}

	var lines []string
	for _, para := range doc.Body.Paragraphs {
		if text := para.text(); text != "" {
			lines = append(lines, text)
		}
	}
	for _, table := range doc.Body.Tables {
		for _, row := range table.Rows {
			var cells []string
			for _, cell := range row.Cells {
				if text := cell.text(); text != "" {
					cells = append(cells, text)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " | "))
			}
		}
	}

	return newRecord(path, strings.Join(lines, "\n"), 1), nil
}

// processDoc extracts legacy .doc files through docconv. When the
// conversion helpers are missing from the runtime the document fails
// with ErrUnsupportedFormat.
func (e *Engine) processDoc(path string) (*models.DocumentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open doc: %w", err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDoc(f)
	if err != nil {
		return nil, fmt.Errorf("%w: convert doc: %v", core.ErrUnsupportedFormat, err)
	}

	return newRecord(path, strings.TrimSpace(text), 1), nil
}

func readDocumentXML(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open document.xml: %v", core.ErrUnsupportedFormat, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: no word/document.xml entry", core.ErrUnsupportedFormat)
}

// documentXML mirrors the subset of word/document.xml the walker
// needs: body paragraphs and tables.
type documentXML struct {
	Body struct {
		Paragraphs []paragraphXML `xml:"p"`
		Tables     []tableXML     `xml:"tbl"`
	} `xml:"body"`
}

type paragraphXML struct {
	Runs []struct {
		Text []string `xml:"t"`
	} `xml:"r"`
}

func (p paragraphXML) text() string {
	var sb strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Text {
			sb.WriteString(t)
		}
	}
	return strings.TrimSpace(sb.String())
}

type tableXML struct {
	Rows []struct {
		Cells []cellXML `xml:"tc"`
	} `xml:"tr"`
}

type cellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

func (c cellXML) text() string {
	var parts []string
	for _, p := range c.Paragraphs {
		if text := p.text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
