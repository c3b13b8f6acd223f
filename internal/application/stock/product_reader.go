package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// ProductReader resuelve productos (sku <-> id), valida asociaciones
// producto-bodega y expande productos de catálogo con su información de stock.
type ProductReader struct {
	stockRepo        repository.StockRepository
	stockProductRepo repository.StockProductRepository
	productRepo      repository.ProductRepository
}

// NewProductReader construye el lector de stock por producto.
func NewProductReader(
	stockRepo repository.StockRepository,
	stockProductRepo repository.StockProductRepository,
	productRepo repository.ProductRepository,
) *ProductReader {
	return &ProductReader{
		stockRepo:        stockRepo,
		stockProductRepo: stockProductRepo,
		productRepo:      productRepo,
	}
}

// GetProductConcreteIDBySku resuelve el id del producto concreto.
// Falla con domain.ErrProductNotFound si el sku no existe.
func (r *ProductReader) GetProductConcreteIDBySku(sku string) (int, error) {
	product, err := r.productRepo.FindConcreteBySku(sku)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}
	return product.ID, nil
}

// GetProductAbstractIDBySku resuelve el id del producto abstracto.
// Falla con domain.ErrProductNotFound si el sku no existe.
func (r *ProductReader) GetProductAbstractIDBySku(sku string) (int, error) {
	abstract, err := r.productRepo.FindAbstractBySku(sku)
	if err != nil {
		return 0, err
	}
	if abstract == nil {
		return 0, domain.ErrProductNotFound
	}
	return abstract.ID, nil
}

// GetStockProductByID carga la fila por id.
// Falla con domain.ErrStockProductNotFound si no existe.
func (r *ProductReader) GetStockProductByID(id int) (*entity.StockProduct, error) {
	sp, err := r.stockProductRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrStockProductNotFound
	}
	return sp, nil
}

// CheckStockDoesNotExist valida que no exista fila para el par
// (bodega, producto). Se llama antes de cada create.
func (r *ProductReader) CheckStockDoesNotExist(stockID, productID int) error {
	exists, err := r.stockProductRepo.ExistsByStockAndProduct(stockID, productID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrStockProductAlreadyExists
	}
	return nil
}

// HasStockProduct responde la pregunta de negocio "¿hay stock?": true solo si
// existe la fila para (sku, tipo de stock) y tiene cantidad positiva no nula
// o el flag never-out-of-stock activado. Una fila con cantidad cero o NULL y
// sin flag cuenta como que no hay stock.
func (r *ProductReader) HasStockProduct(sku, stockTypeName string) (bool, error) {
	sp, err := r.findByPair(sku, stockTypeName)
	if err != nil || sp == nil {
		return false, err
	}
	if sp.IsNeverOutOfStock {
		return true, nil
	}
	return sp.Quantity.Valid && sp.Quantity.Decimal.GreaterThan(decimal.Zero), nil
}

// GetIDStockProduct devuelve el id de la fila para (sku, tipo de stock).
// Falla con domain.ErrStockProductNotFound si no existe.
func (r *ProductReader) GetIDStockProduct(sku, stockTypeName string) (int, error) {
	sp, err := r.findByPair(sku, stockTypeName)
	if err != nil {
		return 0, err
	}
	if sp == nil {
		return 0, domain.ErrStockProductNotFound
	}
	return sp.ID, nil
}

// HasStockProductEntry indica si existe la fila para (sku, tipo de stock),
// sin importar la cantidad. Es el criterio de create-vs-update en la
// persistencia en lote; HasStockProduct responde disponibilidad, no existencia.
func (r *ProductReader) HasStockProductEntry(sku, stockTypeName string) (bool, error) {
	sp, err := r.findByPair(sku, stockTypeName)
	if err != nil {
		return false, err
	}
	return sp != nil, nil
}

// GetStockProductsByIDProduct devuelve las filas de stock del producto en
// bodegas activas (las inactivas se excluyen en silencio).
func (r *ProductReader) GetStockProductsByIDProduct(productID int) ([]*entity.StockProduct, error) {
	return r.stockProductRepo.GetByProductID(productID)
}

// FindStockProductsByIDProductForStore restringe además a bodegas
// relacionadas con la tienda.
func (r *ProductReader) FindStockProductsByIDProductForStore(productID int, storeName string) ([]*entity.StockProduct, error) {
	return r.stockProductRepo.GetByProductIDForStore(productID, storeName)
}

// GetStockProductsByConcreteSku devuelve las filas de stock del sku en
// bodegas activas.
func (r *ProductReader) GetStockProductsByConcreteSku(sku string) ([]*entity.StockProduct, error) {
	return r.stockProductRepo.GetByConcreteSku(sku)
}

// ExpandProductConcreteWithStocks adjunta al producto sus asociaciones de
// stock en bodegas activas. Un producto sin filas queda con lista vacía.
func (r *ProductReader) ExpandProductConcreteWithStocks(product *dto.ProductConcreteData) error {
	rows, err := r.stockProductRepo.GetByProductID(product.ID)
	if err != nil {
		return err
	}
	product.Stocks = product.Stocks[:0]
	for _, row := range rows {
		product.Stocks = append(product.Stocks, dto.StockProductInput{
			ID:                row.ID,
			SKU:               row.SKU,
			StockType:         row.StockType,
			Quantity:          row.Quantity,
			IsNeverOutOfStock: row.IsNeverOutOfStock,
		})
	}
	return nil
}

// ExpandProductConcretesWithStocks expande un lote. Cada producto falla de
// forma independiente: un sku sin stock deja lista vacía sin abortar el lote.
func (r *ProductReader) ExpandProductConcretesWithStocks(products []*dto.ProductConcreteData) error {
	for _, product := range products {
		if err := r.ExpandProductConcreteWithStocks(product); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductReader) findByPair(sku, stockTypeName string) (*entity.StockProduct, error) {
	stock, err := r.stockRepo.FindByName(stockTypeName)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrStockTypeUnknown
	}
	product, err := r.productRepo.FindConcreteBySku(sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return r.stockProductRepo.FindByStockAndProduct(stock.ID, product.ID)
}
