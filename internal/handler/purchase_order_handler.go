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

type PurchaseOrderHandler struct {
	orderService service.PurchaseOrderService
}

func NewPurchaseOrderHandler(orderService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

func (h *PurchaseOrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/api/purchase-orders")
	{
		orders.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListOrders)
		orders.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateOrder)
		orders.GET("/summary", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetSummary)
		orders.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetOrder)
		orders.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateOrder)
		orders.PUT("/:id/status", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ChangeStatus)
		orders.POST("/:id/items", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.AddItem)
		orders.GET("/:id/items/:itemId", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetItem)
		orders.PUT("/:id/items/:itemId", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateItem)
		orders.DELETE("/:id/items/:itemId", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.RemoveItem)
	}
}

// CreateOrder creates a purchase order in DRAFT with a fresh order number
// @Summary      Create purchase order
// @Description  Creates a purchase order in DRAFT status. The order number is allocated sequentially (PO-000001, PO-000002, ...).
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePurchaseOrderRequest  true  "Create Order Payload"
// @Success      201      {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, order))
}

// ListOrders returns a paginated list of purchase orders
// @Summary      List purchase orders
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (DRAFT, SUBMITTED, APPROVED, ORDERED, PARTIALLY_RECEIVED, RECEIVED, CANCELLED)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.List(c.Request.Context(), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// GetOrder returns a purchase order with its item lines
// @Summary      Get purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// UpdateOrder changes header fields of a DRAFT or SUBMITTED order
// @Summary      Update purchase order
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Order ID"
// @Param        payload  body      service.UpdatePurchaseOrderRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) UpdateOrder(c *gin.Context) {
	var req service.UpdatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// ChangeStatus advances an order through its workflow
// @Summary      Change order status
// @Description  Moves the order to a new workflow status. Transitions are forward-only; RECEIVED stamps the actual delivery date.
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Order ID"
// @Param        payload  body      service.ChangeOrderStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/purchase-orders/{id}/status [put]
func (h *PurchaseOrderHandler) ChangeStatus(c *gin.Context) {
	var req service.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.ChangeStatus(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// AddItem appends a product line to an editable order
// @Summary      Add order item
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Order ID"
// @Param        payload  body      service.CreatePurchaseOrderItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/purchase-orders/{id}/items [post]
func (h *PurchaseOrderHandler) AddItem(c *gin.Context) {
	var req service.CreatePurchaseOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// GetItem returns a single product line of an order
// @Summary      Get order item
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true  "Order ID"
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  response.Response{data=service.PurchaseOrderItemResponse}
// @Failure      404     {object}  response.Response
// @Router       /api/purchase-orders/{id}/items/{itemId} [get]
func (h *PurchaseOrderHandler) GetItem(c *gin.Context) {
	item, err := h.orderService.GetItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// UpdateItem edits a product line, including the received quantity
// @Summary      Update order item
// @Tags         purchase-orders
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Order ID"
// @Param        itemId   path      string  true  "Item ID"
// @Param        payload  body      service.UpdateOrderItemRequest  true  "Item Payload"
// @Success      200      {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/purchase-orders/{id}/items/{itemId} [put]
func (h *PurchaseOrderHandler) UpdateItem(c *gin.Context) {
	var req service.UpdateOrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	order, err := h.orderService.UpdateItem(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("itemId"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// RemoveItem deletes a product line from an editable order
// @Summary      Remove order item
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Param        id      path      string  true  "Order ID"
// @Param        itemId  path      string  true  "Item ID"
// @Success      200     {object}  response.Response{data=service.PurchaseOrderResponse}
// @Failure      409     {object}  response.Response
// @Router       /api/purchase-orders/{id}/items/{itemId} [delete]
func (h *PurchaseOrderHandler) RemoveItem(c *gin.Context) {
	order, err := h.orderService.RemoveItem(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("itemId"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, order))
}

// GetSummary returns order counts per workflow bucket plus total value
// @Summary      Purchase order summary
// @Tags         purchase-orders
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.PurchaseOrderSummary}
// @Failure      500  {object}  response.Response
// @Router       /api/purchase-orders/summary [get]
func (h *PurchaseOrderHandler) GetSummary(c *gin.Context) {
	summary, err := h.orderService.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
