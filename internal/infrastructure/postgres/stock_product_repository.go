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

var _ repository.StockProductRepository = (*StockProductRepo)(nil)

// selectStockProduct join base: trae sku y nombre de bodega denormalizados.
const selectStockProduct = `
	SELECT sp.id, sp.fk_stock, sp.fk_product, sp.quantity, sp.is_never_out_of_stock, p.sku, s.name
	FROM stock_products sp
	JOIN products p ON p.id = sp.fk_product
	JOIN stocks s ON s.id = sp.fk_stock`

// StockProductRepo implementación de StockProductRepository sobre PostgreSQL
// (usable con pool o tx).
type StockProductRepo struct {
	q Querier
}

// NewStockProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockProductRepository(q Querier) *StockProductRepo {
	return &StockProductRepo{q: q}
}

// Create inserta la fila y asigna su id. Par duplicado -> domain.ErrDuplicate.
func (r *StockProductRepo) Create(sp *entity.StockProduct) error {
	query := `
		INSERT INTO stock_products (fk_stock, fk_product, quantity, is_never_out_of_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		sp.StockID, sp.ProductID, sp.Quantity, sp.IsNeverOutOfStock,
	).Scan(&sp.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock product: %w", err)
	}
	return nil
}

// Update sobrescribe bodega, producto, cantidad y flag de la fila.
func (r *StockProductRepo) Update(sp *entity.StockProduct) error {
	query := `
		UPDATE stock_products
		SET fk_stock = $2, fk_product = $3, quantity = $4, is_never_out_of_stock = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sp.ID, sp.StockID, sp.ProductID, sp.Quantity, sp.IsNeverOutOfStock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update stock product: %w", err)
	}
	return nil
}

// FindByID obtiene la fila por id, o (nil, nil) si no existe.
func (r *StockProductRepo) FindByID(id int) (*entity.StockProduct, error) {
	return r.findOne(selectStockProduct+` WHERE sp.id = $1`, id)
}

// FindByStockAndProduct obtiene la fila del par, o (nil, nil) si no existe.
func (r *StockProductRepo) FindByStockAndProduct(stockID, productID int) (*entity.StockProduct, error) {
	return r.findOne(selectStockProduct+` WHERE sp.fk_stock = $1 AND sp.fk_product = $2`, stockID, productID)
}

// FindOrCreateByStockAndProduct devuelve la fila del par bloqueada para
// update, creándola con cantidad cero si no existe. Si el insert pierde la
// carrera contra otro escritor (violación de unicidad), se relee una vez.
func (r *StockProductRepo) FindOrCreateByStockAndProduct(stockID, productID int) (*entity.StockProduct, error) {
	sp, err := r.findForUpdate(stockID, productID)
	if err != nil || sp != nil {
		return sp, err
	}

	sp = &entity.StockProduct{StockID: stockID, ProductID: productID}
	query := `
		INSERT INTO stock_products (fk_stock, fk_product, quantity, is_never_out_of_stock)
		VALUES ($1, $2, 0, false)
		RETURNING id`
	err = r.q.QueryRow(context.Background(), query, stockID, productID).Scan(&sp.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return r.findForUpdate(stockID, productID)
		}
		return nil, fmt.Errorf("insert stock product: %w", err)
	}
	return sp, nil
}

// ExistsByStockAndProduct indica si hay fila para el par.
func (r *StockProductRepo) ExistsByStockAndProduct(stockID, productID int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_products WHERE fk_stock = $1 AND fk_product = $2)`,
		stockID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check stock product exists: %w", err)
	}
	return exists, nil
}

// GetByProductID devuelve las filas del producto en bodegas activas.
func (r *StockProductRepo) GetByProductID(productID int) ([]*entity.StockProduct, error) {
	return r.findMany(selectStockProduct+` WHERE sp.fk_product = $1 AND s.is_active`, productID)
}

// GetByProductIDForStore restringe además a bodegas relacionadas con la tienda.
func (r *StockProductRepo) GetByProductIDForStore(productID int, storeName string) ([]*entity.StockProduct, error) {
	query := selectStockProduct + `
		JOIN stock_stores ss ON ss.fk_stock = s.id
		JOIN stores st ON st.id = ss.fk_store
		WHERE sp.fk_product = $1 AND s.is_active AND st.name = $2`
	return r.findMany(query, productID, storeName)
}

// GetByConcreteSku devuelve las filas del sku en bodegas activas.
func (r *StockProductRepo) GetByConcreteSku(sku string) ([]*entity.StockProduct, error) {
	return r.findMany(selectStockProduct+` WHERE p.sku = $1 AND s.is_active`, sku)
}

// GetByConcreteSkuForStore restringe además a bodegas relacionadas con la tienda.
func (r *StockProductRepo) GetByConcreteSkuForStore(sku, storeName string) ([]*entity.StockProduct, error) {
	query := selectStockProduct + `
		JOIN stock_stores ss ON ss.fk_stock = s.id
		JOIN stores st ON st.id = ss.fk_store
		WHERE p.sku = $1 AND s.is_active AND st.name = $2`
	return r.findMany(query, sku, storeName)
}

// GetByAbstractSkuForStore devuelve las filas de todos los productos
// concretos bajo el sku abstracto, en bodegas activas de la tienda.
func (r *StockProductRepo) GetByAbstractSkuForStore(abstractSku, storeName string) ([]*entity.StockProduct, error) {
	query := selectStockProduct + `
		JOIN product_abstracts pa ON pa.id = p.fk_product_abstract
		JOIN stock_stores ss ON ss.fk_stock = s.id
		JOIN stores st ON st.id = ss.fk_store
		WHERE pa.sku = $1 AND s.is_active AND st.name = $2`
	return r.findMany(query, abstractSku, storeName)
}

// GetStoreNamesWhereProductStockIsDefined devuelve las tiendas (distintas)
// con alguna bodega que tenga stock definido para el sku.
func (r *StockProductRepo) GetStoreNamesWhereProductStockIsDefined(sku string) ([]string, error) {
	query := `
		SELECT DISTINCT st.name
		FROM stores st
		JOIN stock_stores ss ON ss.fk_store = st.id
		JOIN stocks s ON s.id = ss.fk_stock
		JOIN stock_products sp ON sp.fk_stock = s.id
		JOIN products p ON p.id = sp.fk_product
		WHERE p.sku = $1 AND s.is_active
		ORDER BY st.name`
	rows, err := r.q.Query(context.Background(), query, sku)
	if err != nil {
		return nil, fmt.Errorf("list stores with stock: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan store name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// findForUpdate bloquea la fila del par para update (SELECT FOR UPDATE).
func (r *StockProductRepo) findForUpdate(stockID, productID int) (*entity.StockProduct, error) {
	query := `
		SELECT id, fk_stock, fk_product, quantity, is_never_out_of_stock
		FROM stock_products
		WHERE fk_stock = $1 AND fk_product = $2
		FOR UPDATE`
	var sp entity.StockProduct
	err := r.q.QueryRow(context.Background(), query, stockID, productID).Scan(
		&sp.ID, &sp.StockID, &sp.ProductID, &sp.Quantity, &sp.IsNeverOutOfStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock product for update: %w", err)
	}
	return &sp, nil
}

func (r *StockProductRepo) findOne(query string, args ...any) (*entity.StockProduct, error) {
	var sp entity.StockProduct
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&sp.ID, &sp.StockID, &sp.ProductID, &sp.Quantity, &sp.IsNeverOutOfStock, &sp.SKU, &sp.StockType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock product: %w", err)
	}
	return &sp, nil
}

func (r *StockProductRepo) findMany(query string, args ...any) ([]*entity.StockProduct, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock products: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockProduct
	for rows.Next() {
		var sp entity.StockProduct
		if err := rows.Scan(&sp.ID, &sp.StockID, &sp.ProductID, &sp.Quantity, &sp.IsNeverOutOfStock, &sp.SKU, &sp.StockType); err != nil {
			return nil, fmt.Errorf("scan stock product: %w", err)
		}
		list = append(list, &sp)
	}
	return list, rows.Err()
}
