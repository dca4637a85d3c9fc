// Package export renders purchasing data into downloadable workbooks.
package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/solarteam/purchaseline/internal/domain/model"
)

const ordersSheet = "Orders"

var orderHeaders = []string{
	"ID",
	"Name",
	"Vendor",
	"Status",
	"Total cost",
	"Cost verified",
	"Carrier",
	"Tracking",
	"Created",
}

// OrdersWorkbook builds an xlsx file with one row per order. The caller owns
// the file and should Close it when done.
func OrdersWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, err
	}

	for col, header := range orderHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ordersSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, order := range orders {
		values := []interface{}{
			order.HumanID,
			order.Name,
			order.Vendor,
			string(order.Status),
			order.TotalCost.StringFixed(2),
			order.CostVerified,
			deref(order.Carrier),
			deref(order.TrackingID),
			order.CreatedAt.Format("2006-01-02"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(ordersSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
