package documents

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/acadboost/academic-service/internal/models"
)

// RenderCertificate produces the printable certificate PDF. The verification
// code is printed verbatim so the holder can be checked against /verify.
func RenderCertificate(cert *models.Certificate, studentName string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetDrawColor(40, 60, 120)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, 281, 194, "D")

	pdf.SetFont("Times", "B", 32)
	pdf.SetTextColor(40, 60, 120)
	pdf.SetY(35)
	pdf.CellFormat(0, 14, "Certificate of "+titleCase(cert.Type), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(10)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 26)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "has been awarded", "", 1, "C", false, 0, "")

	pdf.SetFont("Times", "B", 18)
	pdf.SetTextColor(40, 60, 120)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, cert.Title, "", 1, "C", false, 0, "")

	if cert.Description != "" {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.SetTextColor(90, 90, 90)
		pdf.Ln(2)
		pdf.MultiCell(0, 6, cert.Description, "", "C", false)
	}

	pdf.SetY(165)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 6, "Issued on "+cert.IssueDate.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	pdf.SetFont("Courier", "B", 12)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 8, "Verification code: "+cert.Code, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderResume lays out a generated resume's structured content.
func RenderResume(title string, content models.ResumeContent) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(0, 10, content.PersonalInfo.FullName, "", 1, "C", false, 0, "")

	contact := joinNonEmpty(" | ",
		content.PersonalInfo.Email,
		content.PersonalInfo.Phone,
		content.PersonalInfo.Location,
		content.PersonalInfo.LinkedIn)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 6, contact, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if content.Summary != "" {
		sectionHeader(pdf, "Summary")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(0, 5.5, content.Summary, "", "L", false)
		pdf.Ln(2)
	}

	if len(content.Education) > 0 {
		sectionHeader(pdf, "Education")
		for _, edu := range content.Education {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(40, 40, 40)
			pdf.CellFormat(0, 6, edu.Institution, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(0, 5, joinNonEmpty(" | ", edu.Degree, edu.Year, edu.Grade), "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
	}

	if len(content.Experience) > 0 {
		sectionHeader(pdf, "Experience")
		for _, exp := range content.Experience {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(40, 40, 40)
			pdf.CellFormat(0, 6, joinNonEmpty(" - ", exp.Title, exp.Company), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(0, 5, exp.Duration, "", 1, "L", false, 0, "")
			if exp.Description != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.SetTextColor(40, 40, 40)
				pdf.MultiCell(0, 5, exp.Description, "", "L", false)
			}
			pdf.Ln(1)
		}
	}

	if len(content.Skills) > 0 {
		sectionHeader(pdf, "Skills")
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(0, 5.5, strings.Join(content.Skills, ", "), "", "L", false)
		pdf.Ln(2)
	}

	if len(content.Projects) > 0 {
		sectionHeader(pdf, "Projects")
		for _, proj := range content.Projects {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(40, 40, 40)
			pdf.CellFormat(0, 6, proj.Name, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			if proj.Description != "" {
				pdf.MultiCell(0, 5, proj.Description, "", "L", false)
			}
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(0, 5, joinNonEmpty(" | ", proj.Technology, proj.URL), "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render resume PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(40, 60, 120)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
