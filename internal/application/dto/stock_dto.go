package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/domain/entity"
)

// StockInput entrada para crear o actualizar una bodega.
// StoreNames es el conjunto autoritativo de tiendas relacionadas: al
// actualizar, el conjunto nuevo reemplaza por completo al anterior.
type StockInput struct {
	ID         int      `json:"id,omitempty"`
	Name       string   `json:"name"`
	IsActive   bool     `json:"is_active"`
	StoreNames []string `json:"store_names"`
}

// StockResponse respuesta de createStock/updateStock: éxito con la bodega
// resultante, o lista de errores de validación de negocio (p.ej. nombre
// duplicado). Las violaciones de precondición siguen saliendo como error.
type StockResponse struct {
	Success bool          `json:"success"`
	Stock   *entity.Stock `json:"stock,omitempty"`
	Errors  []string      `json:"errors,omitempty"`
}

// StockProductInput entrada para crear/actualizar la asociación
// producto-bodega. La bodega se referencia por nombre (StockType) y el
// producto por SKU; los ids se resuelven internamente.
type StockProductInput struct {
	ID                int                 `json:"id,omitempty"`
	SKU               string              `json:"sku"`
	StockType         string              `json:"stock_type"`
	Quantity          decimal.NullDecimal `json:"quantity"`
	IsNeverOutOfStock bool                `json:"is_never_out_of_stock"`
}

// ProductConcreteData producto concreto con sus asociaciones de stock
// (se usa para expansión de catálogo y persistencia en lote).
type ProductConcreteData struct {
	ID     int                 `json:"id"`
	SKU    string              `json:"sku"`
	Stocks []StockProductInput `json:"stocks"`
}

// StockProductData transfer de lectura de una asociación producto-bodega.
type StockProductData struct {
	ID                int                 `json:"id"`
	StockID           int                 `json:"stock_id"`
	ProductID         int                 `json:"product_id"`
	SKU               string              `json:"sku"`
	StockType         string              `json:"stock_type"`
	Quantity          decimal.NullDecimal `json:"quantity"`
	IsNeverOutOfStock bool                `json:"is_never_out_of_stock"`
}

// FromStockProduct mapea la entidad al transfer de lectura.
func FromStockProduct(sp *entity.StockProduct) StockProductData {
	return StockProductData{
		ID:                sp.ID,
		StockID:           sp.StockID,
		ProductID:         sp.ProductID,
		SKU:               sp.SKU,
		StockType:         sp.StockType,
		Quantity:          sp.Quantity,
		IsNeverOutOfStock: sp.IsNeverOutOfStock,
	}
}
