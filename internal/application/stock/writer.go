package stock

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// Writer ejecuta las mutaciones de stock. Cada operación pública corre como
// una única transacción: resolver ids -> validar -> mutar -> persistir ->
// señalar invalidación -> hooks. Si algo falla se hace rollback completo y
// ni la señal ni los hooks quedan observables.
type Writer struct {
	txRunner       TxRunner
	productReader  *ProductReader
	updateHandlers []UpdateHandler
}

// NewWriter construye el mutador. productReader (atado al pool) se usa para
// las decisiones previas de la persistencia en lote; dentro de cada
// transacción se construyen lectores sobre los repos de la tx.
func NewWriter(txRunner TxRunner, productReader *ProductReader, updateHandlers []UpdateHandler) *Writer {
	return &Writer{
		txRunner:       txRunner,
		productReader:  productReader,
		updateHandlers: updateHandlers,
	}
}

// CreateStockType crea (o encuentra) una bodega por nombre y señala su
// invalidación. Camino legado de creación de tipos de stock.
func (w *Writer) CreateStockType(ctx context.Context, name string) (int, error) {
	var id int
	err := w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockProductRepository,
		_ repository.ProductRepository,
		_ repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		stock, err := stockRepo.FindOrCreateByName(name)
		if err != nil {
			return err
		}
		id = stock.ID
		return touchRepo.TouchActive(repository.TouchStockType, stock.ID)
	})
	return id, err
}

// CreateStockProduct crea la asociación producto-bodega. Falla con
// domain.ErrStockProductAlreadyExists si ya existe fila para el par.
// Devuelve el id nuevo.
func (w *Writer) CreateStockProduct(ctx context.Context, input dto.StockProductInput) (int, error) {
	var id int
	err := w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		stockProductRepo repository.StockProductRepository,
		productRepo repository.ProductRepository,
		_ repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		reader := NewReader(stockRepo, stockProductRepo, nil)
		productReader := NewProductReader(stockRepo, stockProductRepo, productRepo)

		stockID, err := reader.GetStockTypeIDByName(input.StockType)
		if err != nil {
			return err
		}
		productID, err := productReader.GetProductConcreteIDBySku(input.SKU)
		if err != nil {
			return err
		}
		if err := productReader.CheckStockDoesNotExist(stockID, productID); err != nil {
			return err
		}

		sp := &entity.StockProduct{
			StockID:           stockID,
			ProductID:         productID,
			Quantity:          input.Quantity,
			IsNeverOutOfStock: input.IsNeverOutOfStock,
		}
		if err := stockProductRepo.Create(sp); err != nil {
			// Otro escritor ganó la carrera entre el check y el insert.
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrStockProductAlreadyExists
			}
			return err
		}
		if err := touchRepo.TouchActive(repository.TouchStockProduct, sp.ID); err != nil {
			return err
		}
		id = sp.ID
		return w.handleStockUpdate(input.SKU)
	})
	return id, err
}

// UpdateStockProduct sobrescribe bodega, producto, cantidad y flag de la
// fila identificada por input.ID. Falla con domain.ErrStockProductNotFound
// si la fila no existe. Devuelve el id.
func (w *Writer) UpdateStockProduct(ctx context.Context, input dto.StockProductInput) (int, error) {
	var id int
	err := w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		stockProductRepo repository.StockProductRepository,
		productRepo repository.ProductRepository,
		_ repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		reader := NewReader(stockRepo, stockProductRepo, nil)
		productReader := NewProductReader(stockRepo, stockProductRepo, productRepo)

		productID, err := productReader.GetProductConcreteIDBySku(input.SKU)
		if err != nil {
			return err
		}
		stockID, err := reader.GetStockTypeIDByName(input.StockType)
		if err != nil {
			return err
		}
		sp, err := productReader.GetStockProductByID(input.ID)
		if err != nil {
			return err
		}

		sp.StockID = stockID
		sp.ProductID = productID
		sp.Quantity = input.Quantity
		sp.IsNeverOutOfStock = input.IsNeverOutOfStock
		if err := stockProductRepo.Update(sp); err != nil {
			return err
		}
		if err := touchRepo.TouchActive(repository.TouchStockProduct, sp.ID); err != nil {
			return err
		}
		id = sp.ID
		return w.handleStockUpdate(input.SKU)
	})
	return id, err
}

// IncrementStock suma amount a la cantidad del par (sku, tipo de stock),
// creando la fila con cantidad cero si no existe.
func (w *Writer) IncrementStock(ctx context.Context, sku, stockTypeName string, amount decimal.Decimal) error {
	return w.applyStockDelta(ctx, sku, stockTypeName, amount)
}

// DecrementStock resta amount a la cantidad del par (sku, tipo de stock).
// No hay piso en cero: decrementar por debajo deja cantidad negativa.
func (w *Writer) DecrementStock(ctx context.Context, sku, stockTypeName string, amount decimal.Decimal) error {
	return w.applyStockDelta(ctx, sku, stockTypeName, amount.Neg())
}

func (w *Writer) applyStockDelta(ctx context.Context, sku, stockTypeName string, delta decimal.Decimal) error {
	return w.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		stockProductRepo repository.StockProductRepository,
		productRepo repository.ProductRepository,
		_ repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		reader := NewReader(stockRepo, stockProductRepo, nil)
		productReader := NewProductReader(stockRepo, stockProductRepo, productRepo)

		productID, err := productReader.GetProductConcreteIDBySku(sku)
		if err != nil {
			return err
		}
		stockID, err := reader.GetStockTypeIDByName(stockTypeName)
		if err != nil {
			return err
		}
		sp, err := stockProductRepo.FindOrCreateByStockAndProduct(stockID, productID)
		if err != nil {
			return err
		}

		sp.Quantity = decimal.NewNullDecimal(sp.QuantityOrZero().Add(delta))
		if err := stockProductRepo.Update(sp); err != nil {
			return err
		}
		return touchRepo.TouchActive(repository.TouchStockProduct, sp.ID)
	})
}

// PersistStockProductCollection crea o actualiza cada asociación de stock
// adjunta al producto. Cada entrada es su propia unidad atómica: no hay una
// transacción envolvente sobre el lote.
func (w *Writer) PersistStockProductCollection(ctx context.Context, product *dto.ProductConcreteData) error {
	for i := range product.Stocks {
		entry := &product.Stocks[i]
		exists, err := w.productReader.HasStockProductEntry(entry.SKU, entry.StockType)
		if err != nil {
			return err
		}
		if !exists {
			id, err := w.CreateStockProduct(ctx, *entry)
			if err != nil {
				return err
			}
			entry.ID = id
			continue
		}
		if entry.ID == 0 {
			id, err := w.productReader.GetIDStockProduct(entry.SKU, entry.StockType)
			if err != nil {
				return err
			}
			entry.ID = id
		}
		if _, err := w.UpdateStockProduct(ctx, *entry); err != nil {
			return err
		}
	}
	return nil
}

// handleStockUpdate invoca los handlers registrados con el sku, en orden de
// registro. Un error se propaga y aborta la transacción en curso.
func (w *Writer) handleStockUpdate(sku string) error {
	for _, handler := range w.updateHandlers {
		if err := handler.HandleStockUpdate(sku); err != nil {
			return err
		}
	}
	return nil
}
