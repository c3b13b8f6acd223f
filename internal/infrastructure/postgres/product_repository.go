package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-core/internal/domain/entity"
	"github.com/jhoicas/stock-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo adaptador de solo lectura hacia el catálogo de productos
// (usable con pool o tx). Este módulo no es dueño de esas tablas.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// FindConcreteBySku obtiene el producto concreto por sku, o (nil, nil).
func (r *ProductRepo) FindConcreteBySku(sku string) (*entity.ProductConcrete, error) {
	query := `SELECT id, fk_product_abstract, sku FROM products WHERE sku = $1`
	var p entity.ProductConcrete
	err := r.q.QueryRow(context.Background(), query, sku).Scan(&p.ID, &p.AbstractID, &p.SKU)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// FindAbstractBySku obtiene el producto abstracto por sku, o (nil, nil).
func (r *ProductRepo) FindAbstractBySku(sku string) (*entity.ProductAbstract, error) {
	query := `SELECT id, sku FROM product_abstracts WHERE sku = $1`
	var p entity.ProductAbstract
	err := r.q.QueryRow(context.Background(), query, sku).Scan(&p.ID, &p.SKU)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get abstract product by sku: %w", err)
	}
	return &p, nil
}
