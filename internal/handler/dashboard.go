package handler

import (
	"net/http"

	"santripay/internal/apierror"
	"santripay/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Get godoc
// @Summary Dashboard admin — statistik, ringkasan keuangan, transaksi terbaru
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Router /api/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal memuat dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
