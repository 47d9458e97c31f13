package cart

import (
	"github.com/google/uuid"
	"github.com/jaysam/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// LineResponse represents a cart line joined with live product data
type LineResponse struct {
	ItemID         uuid.UUID       `json:"item_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductName    string          `json:"product_name"`
	TimberType     string          `json:"timber_type"`
	Grade          string          `json:"grade"`
	Dimensions     string          `json:"dimensions"`
	Unit           string          `json:"unit"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	LineTotal      decimal.Decimal `json:"line_total"`
	AvailableStock decimal.Decimal `json:"available_stock"`
}

// CartResponse represents a user's whole cart
type CartResponse struct {
	Items     []LineResponse  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// ToCartResponse converts cart lines to the cart response representation
func ToCartResponse(lines []cart.Line) CartResponse {
	items := make([]LineResponse, len(lines))
	itemCount := 0
	total := decimal.Zero
	for i, line := range lines {
		lineTotal := line.LineTotal()
		items[i] = LineResponse{
			ItemID:         line.ItemID,
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			TimberType:     line.TimberType,
			Grade:          line.Grade,
			Dimensions:     line.Dimensions,
			Unit:           line.Unit,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			LineTotal:      lineTotal,
			AvailableStock: line.AvailableStock,
		}
		itemCount += line.Quantity
		total = total.Add(lineTotal)
	}
	return CartResponse{
		Items:     items,
		ItemCount: itemCount,
		Total:     total,
	}
}
