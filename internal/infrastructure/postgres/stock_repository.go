package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core/internal/domain"
	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create inserta la bodega y asigna su id. Nombre duplicado -> domain.ErrDuplicate.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (uuid, name, is_active)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, stock.UUID, stock.Name, stock.IsActive).Scan(&stock.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// Update persiste nombre y flag de actividad. Nombre duplicado -> domain.ErrDuplicate.
func (r *StockRepo) Update(stock *entity.Stock) error {
	query := `UPDATE stocks SET name = $2, is_active = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, stock.ID, stock.Name, stock.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// FindByID obtiene la bodega por id, o (nil, nil) si no existe.
func (r *StockRepo) FindByID(id int) (*entity.Stock, error) {
	return r.findOne(`SELECT id, COALESCE(uuid, ''), name, is_active FROM stocks WHERE id = $1`, id)
}

// FindByName obtiene la bodega por nombre, o (nil, nil) si no existe.
func (r *StockRepo) FindByName(name string) (*entity.Stock, error) {
	return r.findOne(`SELECT id, COALESCE(uuid, ''), name, is_active FROM stocks WHERE name = $1`, name)
}

// FindOrCreateByName devuelve la bodega con ese nombre, creándola activa y
// con uuid asignado si no existe. Una violación de unicidad en el insert significa que otro
// escritor la creó en paralelo: se relee en lugar de fallar.
func (r *StockRepo) FindOrCreateByName(name string) (*entity.Stock, error) {
	stock, err := r.FindByName(name)
	if err != nil || stock != nil {
		return stock, err
	}
	stock = &entity.Stock{UUID: uuid.NewString(), Name: name, IsActive: true}
	query := `INSERT INTO stocks (uuid, name, is_active) VALUES ($1, $2, $3) RETURNING id`
	err = r.q.QueryRow(context.Background(), query, stock.UUID, stock.Name, stock.IsActive).Scan(&stock.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.FindByName(name)
		}
		return nil, fmt.Errorf("insert stock: %w", err)
	}
	return stock, nil
}

// GetActiveStockNames lista los nombres de bodegas activas.
func (r *StockRepo) GetActiveStockNames() ([]string, error) {
	return r.queryNames(`SELECT name FROM stocks WHERE is_active ORDER BY name`)
}

// GetActiveStockNamesForStore lista los nombres de bodegas activas
// relacionadas con la tienda.
func (r *StockRepo) GetActiveStockNamesForStore(storeName string) ([]string, error) {
	query := `
		SELECT s.name
		FROM stocks s
		JOIN stock_stores ss ON ss.fk_stock = s.id
		JOIN stores st ON st.id = ss.fk_store
		WHERE s.is_active AND st.name = $1
		ORDER BY s.name`
	return r.queryNames(query, storeName)
}

// GetStocksWithStores devuelve bodegas con sus tiendas relacionadas
// agregadas, opcionalmente solo las activas.
func (r *StockRepo) GetStocksWithStores(onlyActive bool) ([]*entity.Stock, error) {
	query := `
		SELECT s.id, COALESCE(s.uuid, ''), s.name, s.is_active,
		       COALESCE(array_agg(st.name) FILTER (WHERE st.name IS NOT NULL), '{}')
		FROM stocks s
		LEFT JOIN stock_stores ss ON ss.fk_stock = s.id
		LEFT JOIN stores st ON st.id = ss.fk_store
		WHERE ($1 = false OR s.is_active)
		GROUP BY s.id, s.uuid, s.name, s.is_active
		ORDER BY s.name`
	rows, err := r.q.Query(context.Background(), query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list stocks with stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.UUID, &s.Name, &s.IsActive, &s.StoreNames); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// StoreIDsForStock devuelve los ids de tiendas relacionadas con la bodega.
func (r *StockRepo) StoreIDsForStock(stockID int) ([]int, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT fk_store FROM stock_stores WHERE fk_stock = $1 ORDER BY fk_store`, stockID)
	if err != nil {
		return nil, fmt.Errorf("list store relations: %w", err)
	}
	defer rows.Close()
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan store relation: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddStoreRelations agrega filas de relación bodega-tienda (idempotente).
func (r *StockRepo) AddStoreRelations(stockID int, storeIDs []int) error {
	query := `
		INSERT INTO stock_stores (fk_stock, fk_store)
		VALUES ($1, $2)
		ON CONFLICT (fk_stock, fk_store) DO NOTHING`
	for _, storeID := range storeIDs {
		if _, err := r.q.Exec(context.Background(), query, stockID, storeID); err != nil {
			return fmt.Errorf("insert store relation: %w", err)
		}
	}
	return nil
}

// RemoveStoreRelations elimina filas de relación bodega-tienda.
func (r *StockRepo) RemoveStoreRelations(stockID int, storeIDs []int) error {
	query := `DELETE FROM stock_stores WHERE fk_stock = $1 AND fk_store = ANY($2)`
	if _, err := r.q.Exec(context.Background(), query, stockID, storeIDs); err != nil {
		return fmt.Errorf("delete store relations: %w", err)
	}
	return nil
}

func (r *StockRepo) findOne(query string, arg any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, arg).Scan(&s.ID, &s.UUID, &s.Name, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

func (r *StockRepo) queryNames(query string, args ...any) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock names: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan stock name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
