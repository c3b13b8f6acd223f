package stock

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/domain/entity"
)

// Calculator agrega la cantidad total disponible de un producto sobre sus
// bodegas activas. Toda la aritmética es decimal exacta: nunca float.
type Calculator struct {
	productReader *ProductReader
}

// NewCalculator construye el calculador sobre el lector de stock por producto.
func NewCalculator(productReader *ProductReader) *Calculator {
	return &Calculator{productReader: productReader}
}

// CalculateStockForProduct suma la cantidad del sku sobre todas sus bodegas
// activas. Las filas de bodegas inactivas no participan (excluidas, no
// llevadas a cero); NULL cuenta como cero. Sin filas devuelve "0".
func (c *Calculator) CalculateStockForProduct(sku string) (decimal.Decimal, error) {
	rows, err := c.productReader.GetStockProductsByConcreteSku(sku)
	if err != nil {
		return decimal.Zero, err
	}
	return sumQuantities(rows), nil
}

// CalculateProductStockForStore es la misma agregación restringida a bodegas
// relacionadas con la tienda.
func (c *Calculator) CalculateProductStockForStore(sku, storeName string) (decimal.Decimal, error) {
	rows, err := c.productReader.stockProductRepo.GetByConcreteSkuForStore(sku, storeName)
	if err != nil {
		return decimal.Zero, err
	}
	return sumQuantities(rows), nil
}

// CalculateProductAbstractStockForStore suma sobre todos los productos
// concretos bajo el sku abstracto, restringido a la tienda. Un sku abstracto
// desconocido falla con domain.ErrProductNotFound; uno conocido sin filas
// suma cero.
func (c *Calculator) CalculateProductAbstractStockForStore(abstractSku, storeName string) (decimal.Decimal, error) {
	if _, err := c.productReader.GetProductAbstractIDBySku(abstractSku); err != nil {
		return decimal.Zero, err
	}
	rows, err := c.productReader.stockProductRepo.GetByAbstractSkuForStore(abstractSku, storeName)
	if err != nil {
		return decimal.Zero, err
	}
	return sumQuantities(rows), nil
}

func sumQuantities(rows []*entity.StockProduct) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.QuantityOrZero())
	}
	return total
}
