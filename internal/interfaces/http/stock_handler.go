package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-core/internal/application/dto"
	"github.com/jhoicas/stock-core/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP para bodegas (protegido).
type StockHandler struct {
	reader  *stock.Reader
	creator *stock.Creator
	updater *stock.Updater
}

// NewStockHandler construye el handler.
func NewStockHandler(reader *stock.Reader, creator *stock.Creator, updater *stock.Updater) *StockHandler {
	return &StockHandler{reader: reader, creator: creator, updater: updater}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInput  true  "Datos de la bodega"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stocks [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.StockInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.creator.CreateStock(c.UserContext(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !out.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega (el conjunto de tiendas es autoritativo)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int             true  "ID de la bodega"
// @Param        body  body  dto.StockInput  true  "Datos de la bodega"
// @Success      200   {object}  dto.StockResponse
// @Router       /api/stocks/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.StockInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.ID = id
	out, err := h.updater.UpdateStock(c.UserContext(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !out.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la bodega"
// @Success      200  {object}  entity.Stock
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stocks/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.reader.FindStockByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bodega no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas con sus tiendas relacionadas
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo bodegas activas"
// @Success      200     {array}  entity.Stock
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	onlyActive := c.QueryBool("active", false)
	out, err := h.reader.GetStocksWithRelatedStores(onlyActive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StockTypes godoc
// @Summary      Tipos de stock disponibles (activos), opcionalmente por tienda
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        store  query  string  false  "Nombre de la tienda"
// @Success      200    {object}  map[string]string
// @Router       /api/stock-types [get]
func (h *StockHandler) StockTypes(c *fiber.Ctx) error {
	store := c.Query("store")
	var (
		out map[string]string
		err error
	)
	if store != "" {
		out, err = h.reader.GetStockTypesForStore(store)
	} else {
		out, err = h.reader.GetAvailableStockTypes()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// WarehouseToStoreMapping godoc
// @Summary      Índice bodega -> tiendas (bodegas activas)
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/mappings/warehouse-to-store [get]
func (h *StockHandler) WarehouseToStoreMapping(c *fiber.Ctx) error {
	out, err := h.reader.GetWarehouseToStoreMapping()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// StoreToWarehouseMapping godoc
// @Summary      Índice tienda -> bodegas (bodegas activas)
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /api/mappings/store-to-warehouse [get]
func (h *StockHandler) StoreToWarehouseMapping(c *fiber.Ctx) error {
	out, err := h.reader.GetStoreToWarehouseMapping()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
