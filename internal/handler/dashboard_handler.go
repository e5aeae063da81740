package handler

import (
	"net/http"
	"strconv"

	"inventory-api/internal/middleware"
	"inventory-api/internal/model"
	"inventory-api/internal/service"
	"inventory-api/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/overview", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetOverview)
		dashboard.GET("/inventory-value", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.GetInventoryValue)
		dashboard.GET("/low-stock-report", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.GetLowStockReport)
		dashboard.GET("/warehouse-summary", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.GetWarehouseSummary)
		dashboard.GET("/top-products", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.GetTopProducts)
	}
}

// GetOverview returns headline counts and total stock value
// @Summary      Dashboard overview
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=model.DashboardOverview}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, overview))
}

// GetInventoryValue values stock grouped by category and warehouse
// @Summary      Inventory value report
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.InventoryValueRow}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/inventory-value [get]
func (h *DashboardHandler) GetInventoryValue(c *gin.Context) {
	rows, err := h.dashboardService.InventoryValue(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetLowStockReport lists entries at or below threshold with runway estimates
// @Summary      Low stock report
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.LowStockRow}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/low-stock-report [get]
func (h *DashboardHandler) GetLowStockReport(c *gin.Context) {
	rows, err := h.dashboardService.LowStockReport(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetWarehouseSummary aggregates stock metrics per active warehouse
// @Summary      Warehouse summary report
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]model.WarehouseSummaryRow}
// @Failure      500  {object}  response.Response
// @Router       /api/dashboard/warehouse-summary [get]
func (h *DashboardHandler) GetWarehouseSummary(c *gin.Context) {
	rows, err := h.dashboardService.WarehouseSummary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

// GetTopProducts ranks products by total stock value
// @Summary      Top products report
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Number of products to return (default 10)"
// @Success      200    {object}  response.Response{data=[]model.TopProductRow}
// @Failure      500    {object}  response.Response
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) GetTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.dashboardService.TopProducts(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}
