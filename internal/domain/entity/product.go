package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible. El stock por bodega vive en Stock.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
