package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

// WriteDocx writes text as a Word document titled with rawURL and returns
// the path.
func WriteDocx(dir, rawURL, text string) (string, error) {
	return writeDocx(dir, baseName(rawURL), rawURL, text)
}

func writeDocx(dir, base, rawURL, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), "Transcrição", true, titleSize)
	addStyledRun(doc.AddParagraph(""), rawURL, false, fontSize)
	doc.AddParagraph("")

	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	out := filepath.Join(dir, base+".docx")
	if err := doc.SaveTo(out); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}
	return out, nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
