package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo adaptador de solo lectura hacia las tiendas (usable con pool o tx).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// FindByName obtiene la tienda por nombre, o (nil, nil) si no existe.
func (r *StoreRepo) FindByName(name string) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name FROM stores WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// GetIDsByNames resuelve nombres de tienda a ids, en el mismo orden.
// Un nombre desconocido produce domain.ErrStoreNotFound.
func (r *StoreRepo) GetIDsByNames(names []string) ([]int, error) {
	ids := make([]int, 0, len(names))
	for _, name := range names {
		store, err := r.FindByName(name)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, name)
		}
		ids = append(ids, store.ID)
	}
	return ids, nil
}
