package billing

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// DoctorInfo holds the letterhead fields printed on invoices.
type DoctorInfo struct {
	Name    string
	Clinic  string
	Address string
	Phone   string
	Email   string
}

// DefaultDoctorInfo is substituted wholesale when no profile is configured.
func DefaultDoctorInfo() DoctorInfo {
	return DoctorInfo{
		Name:    "Dr. John Doe",
		Clinic:  "DoctorConnect Healthcare",
		Address: "123 Medical Center, Healthcare City",
		Phone:   "+1 (555) 123-4567",
		Email:   "doctor@healthcare.com",
	}
}

// DefaultAccent is the header band color used when no theme is configured.
var DefaultAccent = [3]int{41, 128, 185}

// RenderOptions control the letterhead and accent color of a rendered
// invoice. Zero-value fields fall back to the defaults above. Now feeds the
// footer's generation stamp and is injectable for deterministic output.
type RenderOptions struct {
	Doctor DoctorInfo
	Accent [3]int
	Now    func() time.Time
}

func (o RenderOptions) resolve() RenderOptions {
	if o.Doctor == (DoctorInfo{}) {
		o.Doctor = DefaultDoctorInfo()
	}
	if o.Accent == [3]int{} {
		o.Accent = DefaultAccent
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	pageMargin = 20.0
)

// RenderPDF lays out a single-page A4 invoice and returns the finished
// document. Nothing is returned on failure, so callers never stream a
// truncated body.
func RenderPDF(inv *Invoice, opts RenderOptions) ([]byte, error) {
	if inv.CreatedAt.IsZero() || inv.DueDate.IsZero() {
		return nil, fmt.Errorf("invoice %s has no date", inv.InvoiceNumber)
	}
	if inv.Amount < 0 {
		return nil, fmt.Errorf("invoice %s has negative amount", inv.InvoiceNumber)
	}
	opts = opts.resolve()

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Document dates follow the injected clock so output is reproducible.
	pdf.SetCreationDate(opts.Now())
	pdf.SetModificationDate(opts.Now())
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	contentWidth := pageWidth - 2*pageMargin
	r, g, b := opts.Accent[0], opts.Accent[1], opts.Accent[2]

	// Header band with clinic branding.
	pdf.SetFillColor(r, g, b)
	pdf.Rect(0, 0, pageWidth, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Text(pageMargin, 25, tr(opts.Doctor.Clinic))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin, 32, tr(opts.Doctor.Address))
	pdf.SetTextColor(0, 0, 0)

	// Title block, right side.
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(pageWidth-80, 5, 75, 25, "F")
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(pageWidth-75, 20, "INVOICE")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageWidth-75, 28, "# "+inv.InvoiceNumber)

	// Details panel.
	y := 50.0
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Rect(pageMargin, y, contentWidth, 40, "D")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin+5, y+10, "Invoice Details")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(pageMargin+5, y+20, "Invoice Date: "+inv.CreatedAt.Format("January 2, 2006"))
	pdf.Text(pageMargin+5, y+30, "Due Date: "+inv.DueDate.Format("January 2, 2006"))
	pdf.Text(pageWidth-75, y+20, "Status: "+strings.ToUpper(inv.Status))
	pdf.Text(pageWidth-75, y+30, "Phone: "+tr(opts.Doctor.Phone))
	pdf.Text(pageWidth-75, y+40, "Email: "+tr(opts.Doctor.Email))
	y += 50

	// Bill To.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageMargin, y, "Bill To:")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(pageMargin, y+10, tr(billToName(inv)))
	pdf.Text(pageMargin, y+20, "Patient")
	y += 40

	// Service table. The row stretches so wrapped descriptions never clip.
	tableTop := y
	pdf.SetFont("Helvetica", "", 10)
	lines := pdf.SplitText(inv.ServiceDescription, contentWidth-60)
	rowHeight := serviceRowHeight(len(lines))

	pdf.SetFillColor(r, g, b)
	pdf.Rect(pageMargin, tableTop, contentWidth, 15, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pageMargin+5, tableTop+10, "Service Description")
	pdf.Text(pageWidth-50, tableTop+10, "Amount")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(250, 250, 250)
	pdf.Rect(pageMargin, tableTop+15, contentWidth, rowHeight, "F")
	pdf.SetFont("Helvetica", "", 10)
	for i, line := range lines {
		pdf.Text(pageMargin+5, tableTop+25+5*float64(i), tr(line))
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(pageWidth-50, tableTop+25, tr(FormatAmount(inv.Amount)))

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Rect(pageMargin, tableTop, contentWidth, rowHeight+15, "D")
	pdf.Line(pageWidth-50, tableTop, pageWidth-50, tableTop+rowHeight+15)
	y = tableTop + rowHeight + 30

	// Totals box.
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(pageWidth-80, y, 75, 20, "F")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(pageWidth-75, y+12, "Total Amount:")
	pdf.Text(pageWidth-75, y+25, tr(FormatAmount(inv.Amount)))
	y += 40

	// Payment terms.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(pageMargin, y, "Payment Terms & Methods")
	pdf.SetFont("Helvetica", "", 10)
	terms := []string{
		"- Payment is due within 30 days of invoice date",
		"- Late payments may be subject to additional fees",
		"- Accepted payment methods:",
		"    Bank Transfer",
		"    Credit/Debit Card",
		"    Cash (in-person only)",
		"- For payment inquiries, contact us at the number above",
	}
	for i, term := range terms {
		pdf.Text(pageMargin, y+10+5*float64(i), term)
	}

	// Footer.
	footerY := pageHeight - 40
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.5)
	pdf.Line(pageMargin, footerY, pageWidth-pageMargin, footerY)
	pdf.SetFont("Helvetica", "I", 9)
	centerText(pdf, footerY+10, "Thank you for choosing our healthcare services!")
	centerText(pdf, footerY+20, "For any questions regarding this invoice, please contact us.")
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(pageMargin, pageHeight-10, generatedLine(opts.Now()))
	pageNum := "Page 1 of 1"
	pdf.Text(pageWidth-pageMargin-pdf.GetStringWidth(pageNum), pageHeight-10, pageNum)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// serviceRowHeight grows with the wrapped description so long text is never
// clipped, with a 30mm floor matching the single-line layout.
func serviceRowHeight(lineCount int) float64 {
	h := 10.0 + 5.0*float64(lineCount)
	if h < 30 {
		return 30
	}
	return h
}

// generatedLine is the footer stamp recording when the document was built.
func generatedLine(t time.Time) string {
	return "Generated: " + formatShortDate(t)
}

func centerText(pdf *gofpdf.Fpdf, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// PDFFilename names the download after the invoice number, patient and
// creation date. Spaces in the patient name become underscores.
func PDFFilename(inv *Invoice) string {
	patient := "patient"
	if inv.PatientName != nil && *inv.PatientName != "" {
		patient = whitespaceRE.ReplaceAllString(*inv.PatientName, "_")
	}
	return fmt.Sprintf("Invoice_%s_%s_%s.pdf",
		inv.InvoiceNumber, patient, inv.CreatedAt.Format("2006-01-02"))
}
