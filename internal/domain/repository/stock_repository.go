package repository

import "github.com/jhoicas/stock-core/internal/domain/entity"

// StockRepository define el puerto de persistencia para Stock (bodegas).
// Las búsquedas Find* devuelven (nil, nil) cuando no existe la fila.
type StockRepository interface {
	// Create inserta la bodega y asigna stock.ID. El nombre es único:
	// una violación de unicidad se reporta como domain.ErrDuplicate.
	Create(stock *entity.Stock) error
	Update(stock *entity.Stock) error
	FindByID(id int) (*entity.Stock, error)
	FindByName(name string) (*entity.Stock, error)
	// FindOrCreateByName devuelve la bodega con ese nombre, creándola si no
	// existe. Debe ser seguro ante carreras (ver constraint único en BD).
	FindOrCreateByName(name string) (*entity.Stock, error)
	// GetActiveStockNames lista nombres de bodegas activas; la variante
	// ForStore las restringe a las relacionadas con esa tienda.
	GetActiveStockNames() ([]string, error)
	GetActiveStockNamesForStore(storeName string) ([]string, error)
	// GetStocksWithStores devuelve bodegas con StoreNames llenado
	// (join con stock_stores/stores), opcionalmente solo activas.
	GetStocksWithStores(onlyActive bool) ([]*entity.Stock, error)
	// StoreIDsForStock devuelve los ids de tiendas relacionadas a la bodega.
	StoreIDsForStock(stockID int) ([]int, error)
	AddStoreRelations(stockID int, storeIDs []int) error
	RemoveStoreRelations(stockID int, storeIDs []int) error
}
