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

type StockAlertHandler struct {
	alertService service.AlertService
}

func NewStockAlertHandler(alertService service.AlertService) *StockAlertHandler {
	return &StockAlertHandler{alertService: alertService}
}

func (h *StockAlertHandler) RegisterRoutes(router *gin.RouterGroup) {
	alerts := router.Group("/api/stock-alerts")
	{
		alerts.GET("", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.ListAlerts)
		alerts.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateAlert)
		alerts.POST("/check-low-stock", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CheckLowStock)
		alerts.GET("/summary", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetSummary)
		alerts.GET("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetAlert)
		alerts.PUT("/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateAlert)
		alerts.PUT("/:id/acknowledge", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.AcknowledgeAlert)
		alerts.PUT("/:id/resolve", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ResolveAlert)
		alerts.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteAlert)
	}
}

// ListAlerts returns a paginated list of stock alerts
// @Summary      List stock alerts
// @Description  Retrieves stock alerts, optionally filtered by status or type
// @Tags         stock-alerts
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status (ACTIVE, ACKNOWLEDGED, RESOLVED)"
// @Param        type    query     string  false  "Filter by alert type (LOW_STOCK, OUT_OF_STOCK, REORDER_POINT, OVER_STOCK)"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/stock-alerts [get]
func (h *StockAlertHandler) ListAlerts(c *gin.Context) {
	params := pagination.Parse(c)

	alerts, total, err := h.alertService.List(c.Request.Context(), c.Query("status"), c.Query("type"), params.Page, params.Limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	}))
}

// CreateAlert raises a stock alert manually
// @Summary      Create stock alert
// @Tags         stock-alerts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateAlertRequest  true  "Create Alert Payload"
// @Success      201      {object}  response.Response{data=service.StockAlertResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/stock-alerts [post]
func (h *StockAlertHandler) CreateAlert(c *gin.Context) {
	var req service.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	alert, err := h.alertService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, alert))
}

// GetAlert returns a single stock alert by ID
// @Summary      Get stock alert
// @Tags         stock-alerts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Alert ID"
// @Success      200  {object}  response.Response{data=service.StockAlertResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/stock-alerts/{id} [get]
func (h *StockAlertHandler) GetAlert(c *gin.Context) {
	alert, err := h.alertService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alert))
}

// UpdateAlert edits an alert's header fields, optionally moving its status
// @Summary      Update stock alert
// @Description  Updates message and attribution fields. Status may only move forward along the lifecycle; resolved alerts never reopen.
// @Tags         stock-alerts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Alert ID"
// @Param        payload  body      service.UpdateAlertRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.StockAlertResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/stock-alerts/{id} [put]
func (h *StockAlertHandler) UpdateAlert(c *gin.Context) {
	var req service.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	alert, err := h.alertService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alert))
}

// AcknowledgeAlert marks an active alert as acknowledged
// @Summary      Acknowledge stock alert
// @Tags         stock-alerts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Alert ID"
// @Param        payload  body      service.AcknowledgeAlertRequest  true  "Acknowledge Payload"
// @Success      200      {object}  response.Response{data=service.StockAlertResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/stock-alerts/{id}/acknowledge [put]
func (h *StockAlertHandler) AcknowledgeAlert(c *gin.Context) {
	var req service.AcknowledgeAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	alert, err := h.alertService.Acknowledge(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alert))
}

// ResolveAlert marks an alert as resolved
// @Summary      Resolve stock alert
// @Tags         stock-alerts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Alert ID"
// @Param        payload  body      service.ResolveAlertRequest  true  "Resolve Payload"
// @Success      200      {object}  response.Response{data=service.StockAlertResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/stock-alerts/{id}/resolve [put]
func (h *StockAlertHandler) ResolveAlert(c *gin.Context) {
	var req service.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	alert, err := h.alertService.Resolve(c.Request.Context(), currentUserID(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, alert))
}

// DeleteAlert removes a stock alert
// @Summary      Delete stock alert
// @Tags         stock-alerts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Alert ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/stock-alerts/{id} [delete]
func (h *StockAlertHandler) DeleteAlert(c *gin.Context) {
	if err := h.alertService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"deleted": true}))
}

// CheckLowStock scans the ledger and raises alerts for breached thresholds
// @Summary      Run low stock scan
// @Description  Scans all ledger entries and raises LOW_STOCK or OUT_OF_STOCK alerts. Pairs with an open ACTIVE alert are skipped, so the scan is safe to repeat.
// @Tags         stock-alerts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.ScanResult}
// @Failure      500  {object}  response.Response
// @Router       /api/stock-alerts/check-low-stock [post]
func (h *StockAlertHandler) CheckLowStock(c *gin.Context) {
	result, err := h.alertService.RunScan(c.Request.Context(), currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetSummary returns alert counts by status and type
// @Summary      Stock alert summary
// @Tags         stock-alerts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.StockAlertSummary}
// @Failure      500  {object}  response.Response
// @Router       /api/stock-alerts/summary [get]
func (h *StockAlertHandler) GetSummary(c *gin.Context) {
	summary, err := h.alertService.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
