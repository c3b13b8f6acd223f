package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-core/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Reader        *stock.Reader
	ProductReader *stock.ProductReader
	Calculator    *stock.Calculator
	Writer        *stock.Writer
	Creator       *stock.Creator
	Updater       *stock.Updater
	JWTSecret     string
}

// Router registra las rutas de la API. Todas las rutas requieren Bearer Token:
// esta es la superficie de administración del motor de stock.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	stockHandler := NewStockHandler(deps.Reader, deps.Creator, deps.Updater)
	stocks := api.Group("/stocks")
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/", stockHandler.List)
	stocks.Get("/:id", stockHandler.GetByID)
	stocks.Put("/:id", stockHandler.Update)

	api.Get("/stock-types", stockHandler.StockTypes)
	api.Get("/mappings/warehouse-to-store", stockHandler.WarehouseToStoreMapping)
	api.Get("/mappings/store-to-warehouse", stockHandler.StoreToWarehouseMapping)

	spHandler := NewStockProductHandler(deps.Writer, deps.Reader, deps.ProductReader, deps.Calculator)
	stockProducts := api.Group("/stock-products")
	stockProducts.Post("/", spHandler.Create)
	stockProducts.Put("/:id", spHandler.Update)
	stockProducts.Post("/increment", spHandler.Increment)
	stockProducts.Post("/decrement", spHandler.Decrement)

	products := api.Group("/products")
	products.Get("/:sku/stock", spHandler.CalculateStock)
	products.Get("/:sku/stock-products", spHandler.StockProducts)
	products.Get("/:sku/never-out-of-stock", spHandler.NeverOutOfStock)
}
