package stock

import (
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// Reader resuelve bodegas (nombre <-> id), lista tipos de stock disponibles
// y responde preguntas de disponibilidad regional. Solo lectura, sin
// transacción: la consistencia es la que ofrezca el motor de BD.
type Reader struct {
	stockRepo        repository.StockRepository
	stockProductRepo repository.StockProductRepository
	expanders        []CollectionExpander
}

// NewReader construye el lector. Los repos pueden estar atados al pool o a
// una tx, así el Writer puede reusar esta lógica dentro de sus transacciones.
func NewReader(
	stockRepo repository.StockRepository,
	stockProductRepo repository.StockProductRepository,
	expanders []CollectionExpander,
) *Reader {
	return &Reader{
		stockRepo:        stockRepo,
		stockProductRepo: stockProductRepo,
		expanders:        expanders,
	}
}

// GetStockTypeIDByName resuelve el id de la bodega por nombre.
// Falla con domain.ErrStockTypeUnknown si no existe.
func (r *Reader) GetStockTypeIDByName(name string) (int, error) {
	stock, err := r.stockRepo.FindByName(name)
	if err != nil {
		return 0, err
	}
	if stock == nil {
		return 0, domain.ErrStockTypeUnknown
	}
	return stock.ID, nil
}

// FindStockByID devuelve la bodega o (nil, nil) si no existe.
func (r *Reader) FindStockByID(id int) (*entity.Stock, error) {
	return r.stockRepo.FindByID(id)
}

// FindStockByName devuelve la bodega o (nil, nil) si no existe.
func (r *Reader) FindStockByName(name string) (*entity.Stock, error) {
	return r.stockRepo.FindByName(name)
}

// GetAvailableStockTypes devuelve los tipos de stock activos como mapa
// nombre -> nombre (formato que esperan los consumidores de catálogo).
func (r *Reader) GetAvailableStockTypes() (map[string]string, error) {
	names, err := r.stockRepo.GetActiveStockNames()
	if err != nil {
		return nil, err
	}
	return namesToMap(names), nil
}

// GetStockTypesForStore devuelve los tipos de stock activos relacionados con
// la tienda, como mapa nombre -> nombre.
func (r *Reader) GetStockTypesForStore(storeName string) (map[string]string, error) {
	names, err := r.stockRepo.GetActiveStockNamesForStore(storeName)
	if err != nil {
		return nil, err
	}
	return namesToMap(names), nil
}

// GetStocksWithRelatedStores lista bodegas con sus tiendas relacionadas y
// aplica los expanders registrados sobre la colección, en orden.
func (r *Reader) GetStocksWithRelatedStores(onlyActive bool) ([]*entity.Stock, error) {
	stocks, err := r.stockRepo.GetStocksWithStores(onlyActive)
	if err != nil {
		return nil, err
	}
	for _, expander := range r.expanders {
		stocks, err = expander.ExpandStockCollection(stocks)
		if err != nil {
			return nil, err
		}
	}
	return stocks, nil
}

// GetAvailableWarehousesForStore devuelve las bodegas activas relacionadas
// con la tienda.
func (r *Reader) GetAvailableWarehousesForStore(storeName string) ([]*entity.Stock, error) {
	stocks, err := r.GetStocksWithRelatedStores(true)
	if err != nil {
		return nil, err
	}
	var result []*entity.Stock
	for _, stock := range stocks {
		for _, name := range stock.StoreNames {
			if name == storeName {
				result = append(result, stock)
				break
			}
		}
	}
	return result, nil
}

// GetWarehouseToStoreMapping devuelve bodega -> tiendas relacionadas,
// solo bodegas activas.
func (r *Reader) GetWarehouseToStoreMapping() (map[string][]string, error) {
	stocks, err := r.stockRepo.GetStocksWithStores(true)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string][]string, len(stocks))
	for _, stock := range stocks {
		mapping[stock.Name] = append([]string{}, stock.StoreNames...)
	}
	return mapping, nil
}

// GetStoreToWarehouseMapping devuelve tienda -> bodegas activas relacionadas
// (índice inverso de GetWarehouseToStoreMapping).
func (r *Reader) GetStoreToWarehouseMapping() (map[string][]string, error) {
	stocks, err := r.stockRepo.GetStocksWithStores(true)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string][]string)
	for _, stock := range stocks {
		for _, storeName := range stock.StoreNames {
			mapping[storeName] = append(mapping[storeName], stock.Name)
		}
	}
	return mapping, nil
}

// IsNeverOutOfStock es true si alguna fila de stock del sku en cualquier
// bodega activa tiene el flag activado, sin restricción de tienda.
func (r *Reader) IsNeverOutOfStock(sku string) (bool, error) {
	rows, err := r.stockProductRepo.GetByConcreteSku(sku)
	if err != nil {
		return false, err
	}
	return anyNeverOutOfStock(rows), nil
}

// IsNeverOutOfStockForStore es true si alguna fila de stock del sku en
// bodegas activas relacionadas con la tienda tiene el flag activado.
func (r *Reader) IsNeverOutOfStockForStore(sku, storeName string) (bool, error) {
	rows, err := r.stockProductRepo.GetByConcreteSkuForStore(sku, storeName)
	if err != nil {
		return false, err
	}
	return anyNeverOutOfStock(rows), nil
}

// IsProductAbstractNeverOutOfStockForStore igual que la variante concreta,
// pero considera todos los productos concretos bajo el sku abstracto.
func (r *Reader) IsProductAbstractNeverOutOfStockForStore(abstractSku, storeName string) (bool, error) {
	rows, err := r.stockProductRepo.GetByAbstractSkuForStore(abstractSku, storeName)
	if err != nil {
		return false, err
	}
	return anyNeverOutOfStock(rows), nil
}

// GetStoresWhereProductStockIsDefined devuelve las tiendas con alguna bodega
// que tenga stock definido para el sku.
func (r *Reader) GetStoresWhereProductStockIsDefined(sku string) ([]string, error) {
	return r.stockProductRepo.GetStoreNamesWhereProductStockIsDefined(sku)
}

func namesToMap(names []string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[name] = name
	}
	return m
}

func anyNeverOutOfStock(rows []*entity.StockProduct) bool {
	for _, row := range rows {
		if row.IsNeverOutOfStock {
			return true
		}
	}
	return false
}
