package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"santripay/internal/apierror"
	"santripay/internal/dto"
	"santripay/internal/importer"
	"santripay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImportSize caps CSV uploads at 5 MiB.
const maxImportSize = 5 << 20

type SantriHandler struct {
	svc       service.SantriService
	importSvc service.ImportService
}

func NewSantriHandler(svc service.SantriService, importSvc service.ImportService) *SantriHandler {
	return &SantriHandler{svc: svc, importSvc: importSvc}
}

// List godoc
// @Summary Daftar santri (atau satu santri via ?id=)
// @Tags santri
// @Produce json
// @Param id query string false "ID santri"
// @Success 200 {array} dto.SantriResponse
// @Router /api/santri [get]
func (h *SantriHandler) List(c *gin.Context) {
	if rawID := c.Query("id"); rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("ID santri tidak valid"))
			return
		}
		resp, err := h.svc.Get(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal memuat santri"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles both shapes of POST /api/santri: a single record, or a bulk
// payload ({"bulk": true, "santri": [...]}) of loosely-keyed spreadsheet rows.
func (h *SantriHandler) Create(c *gin.Context) {
	var body dto.SantriPostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON tidak valid: "+err.Error()))
		return
	}

	if body.Bulk {
		rows := make([]importer.Row, 0, len(body.Santri))
		for _, raw := range body.Santri {
			var row importer.Row
			if err := json.Unmarshal(raw, &row); err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("Baris santri tidak valid: "+err.Error()))
				return
			}
			rows = append(rows, row)
		}
		result := h.importSvc.ImportRows(c.Request.Context(), rows)
		// Batch results are creations too, even when some rows are reported
		c.JSON(http.StatusCreated, result)
		return
	}

	if !validateStruct(c, &body.CreateSantriRequest) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), body.CreateSantriRequest)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case service.ErrDuplicateNIS, service.ErrDuplicateEmail, service.ErrEmailPasswordMissing:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal membuat santri"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /api/santri?id=... with partial-field semantics.
func (h *SantriHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID santri tidak valid"))
		return
	}

	var req dto.UpdateSantriRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		switch err {
		case service.ErrSantriNotFound:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case service.ErrDuplicateNIS, service.ErrDuplicateEmail:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal memperbarui santri"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/santri?id=...
func (h *SantriHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID santri tidak valid"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case service.ErrSantriNotFound:
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		case service.ErrSantriHasTransaksi:
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Gagal menghapus santri"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Santri berhasil dihapus"})
}

// ImportCSV handles POST /api/santri/import with a multipart "file" field.
func (h *SantriHandler) ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("File tidak ditemukan pada field 'file'"))
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, apierror.New("File terlalu besar (maksimal 5 MB)"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("File tidak dapat dibaca"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("File tidak dapat dibaca"))
		return
	}

	result, err := h.importSvc.ImportCSV(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, result)
}
