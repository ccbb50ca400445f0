package render

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the view to a PDF file. Core fonts only cover cp1252;
// pass fontPath (a UTF-8 TrueType font) for CJK or other scripts.
func WritePDF(v View, outPath string, fontPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		pdf.AddUTF8Font("body", "", fontPath)
		pdf.AddUTF8Font("body", "B", fontPath)
		family = "body"
		tr = func(s string) string { return s }
	}
	pdf.SetTitle(v.Doc.Title, true)
	pdf.SetCreator("wikitext", true)
	pdf.AddPage()

	if v.Doc.Title != "" {
		pdf.SetFont(family, "B", 16)
		pdf.MultiCell(0, 8, tr(v.Doc.Title), "", "L", false)
	}
	pdf.SetFont(family, "", 9)
	summary := fmt.Sprintf("%d paragraphs · %d characters · %d words", v.Stats.Paragraphs, v.Stats.Characters, v.Stats.Words)
	pdf.CellFormat(0, 6, tr(summary), "", 1, "L", false, 0, "")
	if v.URL != "" {
		pdf.CellFormat(0, 6, tr(v.URL), "", 1, "L", false, 0, v.URL)
	}
	pdf.Ln(4)

	pdf.SetFont(family, "", 11)
	scanner := bufio.NewScanner(strings.NewReader(v.Doc.Text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan text: %w", err)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("build pdf: %w", err)
	}
	return pdf.OutputFileAndClose(outPath)
}
