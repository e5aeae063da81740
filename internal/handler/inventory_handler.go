package handler

import (
	"net/http"

	"inventory-api/internal/middleware"
	"inventory-api/internal/model"
	"inventory-api/internal/service"
	"inventory-api/pkg/pagination"
	"inventory-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/api/inventory")
	{
		inventory.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListInventory)
		inventory.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateInventory)
		inventory.GET("/summary", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetSummary)
		inventory.GET("/low-stock", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListLowStock)
		inventory.GET("/product/:productId", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListByProduct)
		inventory.GET("/warehouse/:warehouseId", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListByWarehouse)
		inventory.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetInventory)
		inventory.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateInventory)
		inventory.POST("/:id/adjust", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.AdjustInventory)
		inventory.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteInventory)
	}
}

// CreateInventory opens a ledger entry for a product in a warehouse
// @Summary      Create inventory entry
// @Description  Creates a ledger entry for a product/warehouse pair. Each pair may have at most one entry.
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateInventoryRequest  true  "Create Inventory Payload"
// @Success      201      {object}  response.Response{data=service.InventoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req service.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	inv, err := h.inventoryService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, inv))
}

// ListInventory returns a paginated list of ledger entries
// @Summary      List inventory
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.inventoryService.List(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"inventory": entries,
		"total":     total,
		"page":      params.Page,
		"limit":     params.Limit,
	}))
}

// GetInventory returns a single ledger entry by ID
// @Summary      Get inventory entry
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Inventory ID"
// @Success      200  {object}  response.Response{data=service.InventoryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetInventory(c *gin.Context) {
	inv, err := h.inventoryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// ListByProduct returns ledger entries for one product across warehouses
// @Summary      List inventory by product
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  response.Response{data=[]service.InventoryResponse}
// @Failure      400        {object}  response.Response
// @Router       /api/inventory/product/{productId} [get]
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	entries, err := h.inventoryService.ListByProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// ListByWarehouse returns ledger entries for one warehouse
// @Summary      List inventory by warehouse
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        warehouseId  path      string  true  "Warehouse ID"
// @Success      200          {object}  response.Response{data=[]service.InventoryResponse}
// @Failure      400          {object}  response.Response
// @Router       /api/inventory/warehouse/{warehouseId} [get]
func (h *InventoryHandler) ListByWarehouse(c *gin.Context) {
	entries, err := h.inventoryService.ListByWarehouse(c.Request.Context(), c.Param("warehouseId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// ListLowStock returns entries at or below their product's minimum stock level
// @Summary      List low stock entries
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.InventoryResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	entries, err := h.inventoryService.ListLowStock(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, entries))
}

// AdjustInventory applies an add, subtract, reserve, or release movement
// @Summary      Adjust inventory
// @Description  Applies a stock movement (add, subtract, reserve, release) to a ledger entry
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Inventory ID"
// @Param        payload  body      service.AdjustInventoryRequest  true  "Adjustment Payload"
// @Success      200      {object}  response.Response{data=service.InventoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /api/inventory/{id}/adjust [post]
func (h *InventoryHandler) AdjustInventory(c *gin.Context) {
	var req service.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	inv, err := h.inventoryService.Adjust(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// UpdateInventory replaces the editable fields of a ledger entry
// @Summary      Update inventory entry
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Inventory ID"
// @Param        payload  body      service.UpdateInventoryRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.InventoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req service.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	inv, err := h.inventoryService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, inv))
}

// DeleteInventory removes a ledger entry
// @Summary      Delete inventory entry
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Inventory ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// GetSummary returns ledger-wide counts and total stock value
// @Summary      Inventory summary
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.InventorySummary}
// @Failure      500  {object}  response.Response
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) GetSummary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
