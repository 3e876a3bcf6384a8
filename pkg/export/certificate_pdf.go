package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Certificate carries the fields printed on a course completion certificate.
type Certificate struct {
	Serial      string
	StudentName string
	StudentCode string
	CourseCode  string
	CourseStart string
	CourseEnd   string
	IssuedOn    string
}

// CertificatePDF renders completion certificates.
type CertificatePDF struct{}

// NewCertificatePDF constructs a certificate renderer.
func NewCertificatePDF() *CertificatePDF {
	return &CertificatePDF{}
}

// Render produces a single-page landscape certificate document.
func (e *CertificatePDF) Render(cert Certificate) ([]byte, error) {
	if cert.StudentName == "" || cert.CourseCode == "" {
		return nil, fmt.Errorf("certificate requires student name and course code")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(20, 25, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 28)
	pdf.CellFormat(0, 16, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 12, cert.StudentName, "", 1, "C", false, 0, "")
	if cert.StudentCode != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 6, fmt.Sprintf("Student code: %s", cert.StudentCode), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 13)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, cert.CourseCode, "", 1, "C", false, 0, "")

	if cert.CourseStart != "" && cert.CourseEnd != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("held from %s to %s", cert.CourseStart, cert.CourseEnd), "", 1, "C", false, 0, "")
	}
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Serial: %s", cert.Serial), "", 1, "L", false, 0, "")
	if cert.IssuedOn != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Issued on: %s", cert.IssuedOn), "", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render certificate: %w", err)
	}
	return buf.Bytes(), nil
}
