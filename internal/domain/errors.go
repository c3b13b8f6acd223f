package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// ErrStockTypeUnknown y ErrStockProductAlreadyExists conservan sus mensajes
// históricos en inglés porque hay consumidores que comparan el texto.
var (
	ErrStockTypeUnknown          = errors.New("stock type unknown")
	ErrProductNotFound           = errors.New("producto no encontrado")
	ErrStockProductNotFound      = errors.New("stock de producto no encontrado")
	ErrStockProductAlreadyExists = errors.New("Cannot duplicate entry: this stock type is already set for this product")
	ErrStoreNotFound             = errors.New("tienda no encontrada")
	ErrDuplicate                 = errors.New("recurso duplicado")
	ErrInvalidInput              = errors.New("entrada inválida")
)
