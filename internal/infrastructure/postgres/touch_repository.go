package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-core/internal/domain/repository"
)

var _ repository.TouchRepository = (*TouchRepo)(nil)

// TouchRepo persiste señales de invalidación en la tabla touches, de donde
// las consume el refrescador de caché/índice de búsqueda. Al correr sobre la
// tx de la mutación, un rollback descarta también la señal.
type TouchRepo struct {
	q Querier
}

// NewTouchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTouchRepository(q Querier) *TouchRepo {
	return &TouchRepo{q: q}
}

// TouchActive marca el registro (tipo, id) como tocado-activo.
func (r *TouchRepo) TouchActive(itemType string, itemID int) error {
	query := `
		INSERT INTO touches (item_type, item_id, touched_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_type, item_id)
		DO UPDATE SET touched_at = now()`
	if _, err := r.q.Exec(context.Background(), query, itemType, itemID); err != nil {
		return fmt.Errorf("touch %s %d: %w", itemType, itemID, err)
	}
	return nil
}
