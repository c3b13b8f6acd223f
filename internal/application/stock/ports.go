package stock

import (
	"context"

	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para cada mutación:
// si fn devuelve error se hace Rollback y ningún efecto (toques incluidos)
// queda observable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		stockProductRepo repository.StockProductRepository,
		productRepo repository.ProductRepository,
		storeRepo repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error) error
}

// UpdateHandler punto de extensión invocado tras crear o actualizar un
// StockProduct, con el sku del producto afectado. Los handlers se ejecutan
// síncronos, en orden de registro y dentro de la transacción: un error
// aborta la mutación completa.
type UpdateHandler interface {
	HandleStockUpdate(sku string) error
}

// PostCreateHook punto de extensión tras crear una bodega (dentro de la tx).
type PostCreateHook interface {
	AfterStockCreate(stock *entity.Stock) error
}

// PostUpdateHook punto de extensión tras actualizar una bodega (dentro de la tx).
type PostUpdateHook interface {
	AfterStockUpdate(stock *entity.Stock) error
}

// CollectionExpander punto de extensión para enriquecer colecciones de
// bodegas al listarlas (p.ej. adjuntar datos de otros módulos).
type CollectionExpander interface {
	ExpandStockCollection(stocks []*entity.Stock) ([]*entity.Stock, error)
}
