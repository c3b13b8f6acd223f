package stock

import (
	"context"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

// Updater actualiza bodegas: nombre, flag de actividad y el conjunto de
// tiendas relacionadas, que se reemplaza por completo (el conjunto nuevo es
// autoritativo, no un parche incremental).
type Updater struct {
	txRunner        TxRunner
	postUpdateHooks []PostUpdateHook
}

// NewUpdater construye el actualizador de bodegas.
func NewUpdater(txRunner TxRunner, postUpdateHooks []PostUpdateHook) *Updater {
	return &Updater{txRunner: txRunner, postUpdateHooks: postUpdateHooks}
}

// UpdateStock persiste los cambios, sincroniza la relación de tiendas por
// diff (agrega las nuevas, quita las que dejaron de estar), señala
// invalidación y corre los hooks post-update. Una transacción; los fallos de
// validación vuelven como respuesta con Success=false.
func (u *Updater) UpdateStock(ctx context.Context, input dto.StockInput) (*dto.StockResponse, error) {
	var updated *entity.Stock
	err := u.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.StockProductRepository,
		_ repository.ProductRepository,
		storeRepo repository.StoreRepository,
		touchRepo repository.TouchRepository,
	) error {
		stock, err := stockRepo.FindByID(input.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrStockTypeUnknown
		}

		desiredIDs, err := storeRepo.GetIDsByNames(input.StoreNames)
		if err != nil {
			return err
		}

		stock.Name = input.Name
		stock.IsActive = input.IsActive
		stock.StoreNames = append([]string{}, input.StoreNames...)
		if err := stockRepo.Update(stock); err != nil {
			return err
		}

		currentIDs, err := stockRepo.StoreIDsForStock(stock.ID)
		if err != nil {
			return err
		}
		toAdd, toRemove := diffIDs(currentIDs, desiredIDs)
		if len(toAdd) > 0 {
			if err := stockRepo.AddStoreRelations(stock.ID, toAdd); err != nil {
				return err
			}
		}
		if len(toRemove) > 0 {
			if err := stockRepo.RemoveStoreRelations(stock.ID, toRemove); err != nil {
				return err
			}
		}

		if err := touchRepo.TouchActive(repository.TouchStockType, stock.ID); err != nil {
			return err
		}
		for _, hook := range u.postUpdateHooks {
			if err := hook.AfterStockUpdate(stock); err != nil {
				return err
			}
		}
		updated = stock
		return nil
	})
	if err != nil {
		return stockValidationResponse(err)
	}
	return &dto.StockResponse{Success: true, Stock: updated}, nil
}

// diffIDs calcula el conjunto a agregar (en desired y no en current) y a
// quitar (en current y no en desired).
func diffIDs(current, desired []int) (toAdd, toRemove []int) {
	currentSet := make(map[int]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[int]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
