package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/application/stock"
	"github.com/jhoicas/stock-core/internal/domain"
)

// StockProductHandler maneja las peticiones HTTP para asociaciones
// producto-bodega y consultas de disponibilidad (protegido).
type StockProductHandler struct {
	writer        *stock.Writer
	reader        *stock.Reader
	productReader *stock.ProductReader
	calculator    *stock.Calculator
}

// NewStockProductHandler construye el handler.
func NewStockProductHandler(
	writer *stock.Writer,
	reader *stock.Reader,
	productReader *stock.ProductReader,
	calculator *stock.Calculator,
) *StockProductHandler {
	return &StockProductHandler{
		writer:        writer,
		reader:        reader,
		productReader: productReader,
		calculator:    calculator,
	}
}

// StockDeltaRequest entrada para incrementar/decrementar stock.
type StockDeltaRequest struct {
	SKU       string          `json:"sku"`
	StockType string          `json:"stock_type"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Create godoc
// @Summary      Crear asociación producto-bodega
// @Tags         stock-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockProductInput  true  "Asociación"
// @Success      201   {object}  map[string]int
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock-products [post]
func (h *StockProductHandler) Create(c *fiber.Ctx) error {
	var in dto.StockProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.writer.CreateStockProduct(c.UserContext(), in)
	if err != nil {
		return stockProductError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Update godoc
// @Summary      Actualizar asociación producto-bodega
// @Tags         stock-products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID de la asociación"
// @Param        body  body  dto.StockProductInput  true  "Asociación"
// @Success      200   {object}  map[string]int
// @Router       /api/stock-products/{id} [put]
func (h *StockProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.StockProductInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.ID = id
	if _, err := h.writer.UpdateStockProduct(c.UserContext(), in); err != nil {
		return stockProductError(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

// Increment godoc
// @Summary      Incrementar la cantidad del par (sku, tipo de stock)
// @Tags         stock-products
// @Security     Bearer
// @Accept       json
// @Param        body  body  StockDeltaRequest  true  "Delta"
// @Success      204
// @Router       /api/stock-products/increment [post]
func (h *StockProductHandler) Increment(c *fiber.Ctx) error {
	return h.applyDelta(c, h.writer.IncrementStock)
}

// Decrement godoc
// @Summary      Decrementar la cantidad del par (sku, tipo de stock)
// @Tags         stock-products
// @Security     Bearer
// @Accept       json
// @Param        body  body  StockDeltaRequest  true  "Delta"
// @Success      204
// @Router       /api/stock-products/decrement [post]
func (h *StockProductHandler) Decrement(c *fiber.Ctx) error {
	return h.applyDelta(c, h.writer.DecrementStock)
}

// StockProducts godoc
// @Summary      Filas de stock del producto en bodegas activas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {array}  dto.StockProductData
// @Router       /api/products/{sku}/stock-products [get]
func (h *StockProductHandler) StockProducts(c *fiber.Ctx) error {
	sku := c.Params("sku")
	rows, err := h.productReader.GetStockProductsByConcreteSku(sku)
	if err != nil {
		return stockProductError(c, err)
	}
	out := make([]dto.StockProductData, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromStockProduct(row))
	}
	return c.JSON(out)
}

// CalculateStock godoc
// @Summary      Stock total del producto en bodegas activas
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku       path   string  true   "SKU"
// @Param        store     query  string  false  "Restringir a la tienda"
// @Param        abstract  query  bool    false  "El sku es abstracto (requiere store)"
// @Success      200  {object}  map[string]string
// @Router       /api/products/{sku}/stock [get]
func (h *StockProductHandler) CalculateStock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	store := c.Query("store")
	isAbstract := c.QueryBool("abstract", false)

	var (
		total decimal.Decimal
		err   error
	)
	switch {
	case isAbstract && store == "":
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store es requerido para sku abstracto"})
	case isAbstract:
		total, err = h.calculator.CalculateProductAbstractStockForStore(sku, store)
	case store != "":
		total, err = h.calculator.CalculateProductStockForStore(sku, store)
	default:
		total, err = h.calculator.CalculateStockForProduct(sku)
	}
	if err != nil {
		return stockProductError(c, err)
	}
	return c.JSON(fiber.Map{"sku": sku, "quantity": total.String()})
}

// NeverOutOfStock godoc
// @Summary      Flag never-out-of-stock del sku, global o por tienda
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        sku       path   string  true   "SKU"
// @Param        store     query  string  false  "Restringir a la tienda"
// @Param        abstract  query  bool    false  "El sku es abstracto (requiere store)"
// @Success      200  {object}  map[string]bool
// @Router       /api/products/{sku}/never-out-of-stock [get]
func (h *StockProductHandler) NeverOutOfStock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	store := c.Query("store")
	isAbstract := c.QueryBool("abstract", false)

	var (
		flag bool
		err  error
	)
	switch {
	case isAbstract && store == "":
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store es requerido para sku abstracto"})
	case isAbstract:
		flag, err = h.reader.IsProductAbstractNeverOutOfStockForStore(sku, store)
	case store != "":
		flag, err = h.reader.IsNeverOutOfStockForStore(sku, store)
	default:
		flag, err = h.reader.IsNeverOutOfStock(sku)
	}
	if err != nil {
		return stockProductError(c, err)
	}
	return c.JSON(fiber.Map{"sku": sku, "never_out_of_stock": flag})
}

func (h *StockProductHandler) applyDelta(c *fiber.Ctx, apply func(ctx context.Context, sku, stockType string, amount decimal.Decimal) error) error {
	var in StockDeltaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.StockType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y stock_type son requeridos"})
	}
	if err := apply(c.UserContext(), in.SKU, in.StockType, in.Quantity); err != nil {
		return stockProductError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// stockProductError mapea errores de dominio a códigos HTTP.
func stockProductError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrStockProductAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrStockTypeUnknown),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrStockProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
