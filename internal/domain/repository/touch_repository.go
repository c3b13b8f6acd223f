package repository

// Tipos de registro para las señales de invalidación ("touch").
const (
	TouchStockType    = "stock-type"
	TouchStockProduct = "stock-product"
)

// TouchRepository puerto hacia el sumidero de señales de invalidación de
// caché/índice de búsqueda. Cada create/update exitoso de un registro emite
// exactamente una señal con su tipo e id. La señal participa de la misma
// transacción que la mutación: un rollback la descarta.
type TouchRepository interface {
	TouchActive(itemType string, itemID int) error
}
