package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	repo "app/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ExportUsecase renders filtered orders into a spreadsheet for the
// back-office.
type ExportUsecase struct {
	tx repo.TransactionManager
}

func NewExportUsecase(tx repo.TransactionManager) *ExportUsecase {
	return &ExportUsecase{tx: tx}
}

var exportHeader = []string{
	"Order Number", "Created", "Status", "Customer", "Email", "Product",
	"Liters", "Price/L", "Base Price", "Delivery Fee", "Discount", "Total",
	"Payment", "Invoice Number", "Invoice Date", "Origin Domain",
}

// Orders writes an xlsx workbook of every order matching the filter.
func (u *ExportUsecase) Orders(ctx context.Context, f repo.AdminOrderListFilter) ([]byte, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 100
	}

	wb := excelize.NewFile()
	defer wb.Close()

	const sheet = "Orders"
	wb.SetSheetName(wb.GetSheetName(0), sheet)

	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
		}
	}

	row := 2
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for {
			orders, _, err := r.Orders().ListAdmin(ctx, f)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if len(orders) == 0 {
				return nil
			}

			for _, o := range orders {
				invoiceNumber := ""
				if o.InvoiceNumber != nil {
					invoiceNumber = *o.InvoiceNumber
				}
				invoiceDate := ""
				if o.InvoiceDate != nil {
					invoiceDate = o.InvoiceDate.Format("2006-01-02")
				}

				values := []interface{}{
					o.OrderNumber,
					o.CreatedAt.Format("2006-01-02 15:04"),
					string(o.Status),
					o.CustomerName,
					o.CustomerEmail,
					o.Product,
					o.Liters,
					o.PricePerLiter,
					o.BasePrice,
					o.DeliveryFee,
					o.Discount,
					o.TotalAmount,
					string(o.PaymentMethod),
					invoiceNumber,
					invoiceDate,
					o.OriginDomain,
				}
				for i, v := range values {
					cell, _ := excelize.CoordinatesToCellName(i+1, row)
					if err := wb.SetCellValue(sheet, cell, v); err != nil {
						return NewHTTPError(http.StatusInternalServerError, "export failed")
					}
				}
				row++
			}

			if len(orders) < f.Limit {
				return nil
			}
			f.Page++
		}
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return buf.Bytes(), nil
}

// ExportFilename names the download after the export date, e.g.
// orders-2026-09-01.xlsx.
func ExportFilename(date string) string {
	return fmt.Sprintf("orders-%s.xlsx", date)
}
