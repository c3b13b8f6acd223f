package repository

import "github.com/jhoicas/stock-core/internal/domain/entity"

// StoreRepository puerto de solo lectura hacia las tiendas (canales de venta).
type StoreRepository interface {
	// FindByName devuelve (nil, nil) si la tienda no existe.
	FindByName(name string) (*entity.Store, error)
	// GetIDsByNames resuelve nombres a ids en el mismo orden de entrada.
	// Un nombre desconocido produce domain.ErrStoreNotFound.
	GetIDsByNames(names []string) ([]int, error)
}
