package repository

import "github.com/jhoicas/stock-core/internal/domain/entity"

// StockProductRepository define el puerto de persistencia para StockProduct.
//
// Las consultas Get*ByConcreteSku / ByProductID / ByAbstractSku filtran por
// bodegas activas: las filas de bodegas inactivas se excluyen en silencio,
// no se reportan como error.
type StockProductRepository interface {
	// Create inserta la fila y asigna sp.ID. El par (StockID, ProductID) es
	// único: una violación de unicidad se reporta como domain.ErrDuplicate.
	Create(sp *entity.StockProduct) error
	Update(sp *entity.StockProduct) error
	FindByID(id int) (*entity.StockProduct, error)
	// FindByStockAndProduct devuelve (nil, nil) si no hay fila para el par.
	FindByStockAndProduct(stockID, productID int) (*entity.StockProduct, error)
	// FindOrCreateByStockAndProduct devuelve la fila para el par bloqueada
	// para update, creándola con cantidad cero si no existe. Una violación
	// de unicidad en el insert significa que otro escritor la creó en
	// paralelo: se relee una vez en lugar de fallar.
	FindOrCreateByStockAndProduct(stockID, productID int) (*entity.StockProduct, error)
	ExistsByStockAndProduct(stockID, productID int) (bool, error)

	GetByProductID(productID int) ([]*entity.StockProduct, error)
	GetByProductIDForStore(productID int, storeName string) ([]*entity.StockProduct, error)
	GetByConcreteSku(sku string) ([]*entity.StockProduct, error)
	GetByConcreteSkuForStore(sku, storeName string) ([]*entity.StockProduct, error)
	GetByAbstractSkuForStore(abstractSku, storeName string) ([]*entity.StockProduct, error)
	// GetStoreNamesWhereProductStockIsDefined devuelve las tiendas (distintas)
	// con alguna bodega que tenga stock definido para el sku.
	GetStoreNamesWhereProductStockIsDefined(sku string) ([]string, error)
}
