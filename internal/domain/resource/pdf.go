package resource

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// AnnualReportPDF renders an annual report document as a PDF.
func (s *Service) AnnualReportPDF(ctx context.Context, id string) ([]byte, error) {
	def, _ := DefinitionByName("annual-reports")
	doc, err := s.store.Get(ctx, def.Collection, id)
	if err != nil {
		return nil, err
	}

	str := func(key string) string {
		v, _ := doc[key].(string)
		return v
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Annual Performance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", str("employeeName")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Job Title: %s", str("jobTitle")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Department: %s", str("department")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Review Period: %s", str("reviewPeriod")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Manager: %s", str("managerName")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date of Review: %s", str("dateOfReview")))
	pdf.Ln(10)

	section := func(title, text string) {
		if text == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, text, "", "L", false)
		pdf.Ln(4)
	}

	section("Achievements", str("achievements"))
	section("Development Goals", str("developmentGoals"))
	section("Performance Rating", str("performanceRating"))
	section("Manager Comments", str("managerComments"))

	if comps, ok := doc["competencies"].([]any); ok && len(comps) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Competencies")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, c := range comps {
			comp, ok := c.(map[string]any)
			if !ok {
				continue
			}
			name, _ := comp["name"].(string)
			rating, _ := comp["rating"].(string)
			comments, _ := comp["comments"].(string)
			line := name
			if rating != "" {
				line += " - " + rating
			}
			if comments != "" {
				line += " (" + comments + ")"
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render annual report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
