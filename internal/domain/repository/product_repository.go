package repository

import "github.com/jhoicas/stock-core/internal/domain/entity"

// ProductRepository puerto de solo lectura hacia el catálogo de productos.
// Devuelve (nil, nil) cuando el sku no existe.
type ProductRepository interface {
	FindConcreteBySku(sku string) (*entity.ProductConcrete, error)
	FindAbstractBySku(sku string) (*entity.ProductAbstract, error)
}
