package entity

import "github.com/shopspring/decimal"

// StockProduct es la cantidad de un producto concreto en una bodega.
// El par (StockID, ProductID) es único: a lo sumo una fila por producto y bodega.
type StockProduct struct {
	ID        int
	StockID   int
	ProductID int
	// Quantity es NUMERIC nullable en la BD: Valid=false representa NULL.
	Quantity          decimal.NullDecimal
	IsNeverOutOfStock bool
	// SKU y StockType son denormalizados (join con products y stocks);
	// se llenan solo en las consultas de lectura.
	SKU       string
	StockType string
}

// QuantityOrZero devuelve la cantidad tratando NULL como cero.
func (sp *StockProduct) QuantityOrZero() decimal.Decimal {
	if !sp.Quantity.Valid {
		return decimal.Zero
	}
	return sp.Quantity.Decimal
}
