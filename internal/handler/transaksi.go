package handler

import (
	"net/http"

	"santripay/internal/apierror"
	"santripay/internal/dto"
	"santripay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransaksiHandler struct{ svc service.TransaksiService }

func NewTransaksiHandler(svc service.TransaksiService) *TransaksiHandler {
	return &TransaksiHandler{svc: svc}
}

// Create godoc
// @Summary Catat transaksi pembayaran
// @Tags transaksi
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTransaksiRequest true "Data transaksi"
// @Success 201 {object} dto.TransaksiResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/transaksi [post]
func (h *TransaksiHandler) Create(c *gin.Context) {
	var req dto.CreateTransaksiRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		switch err {
		case service.ErrSantriNotFound:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case service.ErrInvalidJenis, service.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal mencatat transaksi"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List filters by optional ?jenis= and ?status= query params.
func (h *TransaksiHandler) List(c *gin.Context) {
	var filter dto.TransaksiFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parameter filter tidak valid"))
		return
	}

	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		switch err {
		case service.ErrInvalidJenis, service.ErrInvalidStatus:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal memuat transaksi"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransaksiHandler) Recent(c *gin.Context) {
	resp, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal memuat transaksi"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Kwitansi streams the receipt PDF for a LUNAS transaksi.
func (h *TransaksiHandler) Kwitansi(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID transaksi tidak valid"))
		return
	}

	path, err := h.svc.Kwitansi(c.Request.Context(), id)
	if err != nil {
		switch err {
		case service.ErrTransaksiNotFound:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case service.ErrKwitansiNotPaid:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal membuat kwitansi"))
		}
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.FileAttachment(path, "kwitansi.pdf")
}
