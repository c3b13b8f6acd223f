package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// Creator crea bodegas con su relación de tiendas, señal de invalidación y
// hooks post-create, todo en una transacción.
type Creator struct {
	txRunner        TxRunner
	postCreateHooks []PostCreateHook
}

// NewCreator construye el creador de bodegas.
func NewCreator(txRunner TxRunner, postCreateHooks []PostCreateHook) *Creator {
	return &Creator{txRunner: txRunner, postCreateHooks: postCreateHooks}
}

// CreateStock persiste la bodega nueva (uuid asignado), aplica el conjunto de
// tiendas relacionadas, señala invalidación y corre los hooks post-create.
// Los fallos de validación de negocio (nombre duplicado, tienda desconocida)
// no salen como error: vuelven en la respuesta con Success=false.
func (c *Creator) CreateStock(ctx context.Context, input dto.StockInput) (*dto.StockResponse, error) {
	if input.Name == "" {
		return &dto.StockResponse{Errors: []string{"name es requerido"}}, nil
	}

	var created *entity.Stock
	err := c.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockProductRepository,
		_ repository.ProductRepository,
		storeRepo repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		storeIDs, err := storeRepo.GetIDsByNames(input.StoreNames)
		if err != nil {
			return err
		}

		stock := &entity.Stock{
			UUID:       uuid.NewString(),
			Name:       input.Name,
			IsActive:   input.IsActive,
			StoreNames: append([]string{}, input.StoreNames...),
		}
		if err := stockRepo.Create(stock); err != nil {
			return err
		}
		if len(storeIDs) > 0 {
			if err := stockRepo.AddStoreRelations(stock.ID, storeIDs); err != nil {
				return err
			}
		}
		if err := touchRepo.TouchActive(repository.TouchStockType, stock.ID); err != nil {
			return err
		}
		for _, hook := range c.postCreateHooks {
			if err := hook.AfterStockCreate(stock); err != nil {
				return err
			}
		}
		created = stock
		return nil
	})
	if err != nil {
		return stockValidationResponse(err)
	}
	return &dto.StockResponse{Success: true, Stock: created}, nil
}

// stockValidationResponse separa errores de validación de negocio (vuelven
// como respuesta con Success=false) de errores de precondición/infraestructura
// (se propagan).
func stockValidationResponse(err error) (*dto.StockResponse, error) {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return &dto.StockResponse{Errors: []string{"ya existe una bodega con ese nombre"}}, nil
	case errors.Is(err, domain.ErrStoreNotFound):
		return &dto.StockResponse{Errors: []string{domain.ErrStoreNotFound.Error()}}, nil
	case errors.Is(err, domain.ErrStockTypeUnknown):
		return &dto.StockResponse{Errors: []string{"bodega no encontrada"}}, nil
	}
	return nil, err
}
