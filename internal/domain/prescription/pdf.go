package prescription

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderOptions name the prescribing doctor and clinic on the letterhead.
type RenderOptions struct {
	DoctorName string
	Clinic     string
}

func (o RenderOptions) resolve() RenderOptions {
	if o.DoctorName == "" {
		o.DoctorName = "John Doe"
	}
	if o.Clinic == "" {
		o.Clinic = "DoctorConnect Healthcare"
	}
	return o
}

const pageWidth = 210.0

// RenderPDF lays out a single-page A4 prescription. Nothing is returned on
// failure, so callers never stream a truncated body.
func RenderPDF(p *Prescription, opts RenderOptions) ([]byte, error) {
	if p.PrescribedDate.IsZero() {
		return nil, fmt.Errorf("prescription %s has no prescribed date", p.ID)
	}
	opts = opts.resolve()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	centerText(pdf, 30, "PRESCRIPTION")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 50, tr(opts.Clinic))
	pdf.Text(20, 60, tr("Dr. "+opts.DoctorName))
	pdf.Text(20, 70, "Medical Practitioner")

	pdf.Text(140, 50, "Date: "+fmt.Sprintf("%d/%d/%d",
		p.PrescribedDate.Month(), p.PrescribedDate.Day(), p.PrescribedDate.Year()))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(20, 90, "Patient Information:")
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(20, 100, tr("Name: "+patientName(p)))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(20, 120, "Prescription Details:")

	pdf.SetFont("Helvetica", "", 12)
	y := 130.0
	pdf.Rect(20, y-5, 170, 40, "D")
	pdf.Text(25, y+5, tr("Medication: "+p.MedicationName))
	pdf.Text(25, y+15, tr("Dosage: "+p.Dosage))
	pdf.Text(25, y+25, tr("Frequency: "+p.Frequency))
	pdf.Text(25, y+35, tr("Duration: "+p.Duration))
	y += 50

	// The instructions block only appears when there is something to say;
	// the signature line moves down with it.
	if p.SpecialInstructions != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, "Special Instructions:")
		pdf.SetFont("Helvetica", "", 12)
		lines := pdf.SplitText(p.SpecialInstructions, 170)
		for i, line := range lines {
			pdf.Text(20, y+10+5*float64(i), tr(line))
		}
		y += 10 + 5*float64(len(lines))
	}

	y += 30
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(20, y, "Doctor Signature: ____________________")

	pdf.SetFont("Helvetica", "I", 10)
	centerText(pdf, 280, "This is a computer generated prescription")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render prescription pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func centerText(pdf *gofpdf.Fpdf, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}

// PDFFilename names the download after the patient and the prescribed date.
func PDFFilename(p *Prescription) string {
	return fmt.Sprintf("prescription_%s_%s.pdf",
		patientName(p), p.PrescribedDate.Format("2006-01-02"))
}
