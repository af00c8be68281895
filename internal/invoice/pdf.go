package invoice

import (
	"bytes"
	"fmt"
	"strings"

	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders invoice documents with the shop as letterhead and
// writes them into the file store.
type PDFRenderer struct {
	store *FileStore
}

func NewPDFRenderer(store *FileStore) *PDFRenderer {
	return &PDFRenderer{store: store}
}

func (r *PDFRenderer) Render(doc usecase.InvoiceDocument) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// letterhead
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 7, tr(doc.Shop.CompanyName))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr(fmt.Sprintf("%s, %s %s", doc.Shop.Street, doc.Shop.Postcode, doc.Shop.City)))
	pdf.Ln(4)
	if doc.Shop.VATNumber != "" {
		pdf.Cell(0, 5, tr("USt-IdNr. "+doc.Shop.VATNumber))
		pdf.Ln(4)
	}
	if doc.Shop.CourtRegister != "" {
		pdf.Cell(0, 5, tr(doc.Shop.CourtRegister))
		pdf.Ln(4)
	}
	pdf.Ln(8)

	// billing address
	o := doc.Order
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, tr(strings.TrimSpace(o.BillingFirstName+" "+o.BillingLastName)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(o.BillingStreet))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(o.BillingPostcode+" "+o.BillingCity))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 6, tr("Rechnung "+doc.InvoiceNumber))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Rechnungsdatum: %s", doc.InvoiceDate.Format("02.01.2006"))))
	pdf.Ln(4)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Bestellnummer: %s", o.OrderNumber)))
	pdf.Ln(10)

	// line items
	cur := doc.Brand.Currency
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, tr("Position"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, tr("Menge"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr("Preis/L"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr("Betrag"), "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(80, 6, tr(o.Product), "", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, tr(fmt.Sprintf("%d L", o.Liters)), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, tr(fmt.Sprintf("%.4f %s", o.PricePerLiter, cur)), "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, tr(fmt.Sprintf("%.2f %s", o.BasePrice, cur)), "", 1, "R", false, 0, "")

	if o.DeliveryFee > 0 {
		pdf.CellFormat(135, 6, tr("Lieferpauschale"), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(fmt.Sprintf("%.2f %s", o.DeliveryFee, cur)), "", 1, "R", false, 0, "")
	}
	if o.Discount > 0 {
		pdf.CellFormat(135, 6, tr("Rabatt"), "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tr(fmt.Sprintf("-%.2f %s", o.Discount, cur)), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.CellFormat(135, 6, tr(fmt.Sprintf("Nettobetrag (%.0f%% USt.)", doc.Brand.VATRate)), "T", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, tr(fmt.Sprintf("%.2f %s", doc.NetAmount, cur)), "T", 1, "R", false, 0, "")
	pdf.CellFormat(135, 6, tr("Umsatzsteuer"), "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 6, tr(fmt.Sprintf("%.2f %s", doc.VATAmount, cur)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(135, 7, tr("Gesamtbetrag"), "T", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, tr(fmt.Sprintf("%.2f %s", o.TotalAmount, cur)), "T", 1, "R", false, 0, "")

	// payment block
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, tr("Bankverbindung:"))
	pdf.Ln(4)
	pdf.Cell(0, 5, tr(fmt.Sprintf("%s, %s", doc.BankAccount.BankName, doc.BankAccount.AccountHolder)))
	pdf.Ln(4)
	pdf.Cell(0, 5, tr(fmt.Sprintf("IBAN %s  BIC %s", doc.BankAccount.IBAN, doc.BankAccount.BIC)))
	pdf.Ln(4)
	pdf.Cell(0, 5, tr("Verwendungszweck: "+doc.InvoiceNumber))

	if doc.Notes != "" {
		pdf.Ln(8)
		pdf.MultiCell(0, 5, tr(doc.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", err
	}

	// uuid suffix so a regenerated artifact never overwrites the old one
	name := fmt.Sprintf("%s-%s.pdf", doc.InvoiceNumber, uuid.NewString()[:8])
	return r.store.Save(name, buf.Bytes())
}

func (r *PDFRenderer) Discard(fileURL string) error {
	return r.store.Remove(fileURL)
}
