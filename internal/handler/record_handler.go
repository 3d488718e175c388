package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lading/internal/export"
	"lading/internal/service"
)

// RecordHandler handles persisted-record endpoints.
type RecordHandler struct {
	parseService  service.ParseService
	exportService *export.Service
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(parseService service.ParseService, exportService *export.Service) *RecordHandler {
	return &RecordHandler{parseService: parseService, exportService: exportService}
}

// List handles GET /api/v1/records
func (h *RecordHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	rows, total, err := h.parseService.ListRecords(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, rows, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/records/:id
func (h *RecordHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record id")
		return
	}

	row, err := h.parseService.GetRecord(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, row)
}

// ListByDocument handles GET /api/v1/documents/:id/records
func (h *RecordHandler) ListByDocument(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}

	rows, err := h.parseService.ListByDocument(c.Request.Context(), documentID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// Delete handles DELETE /api/v1/records/:id
func (h *RecordHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid record id")
		return
	}

	if err := h.parseService.DeleteRecord(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Preview handles GET /api/v1/documents/:id/preview. It returns a
// time-limited URL for the original uploaded file.
func (h *RecordHandler) Preview(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document id")
		return
	}
	fileName := c.Query("file_name")
	if fileName == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE_NAME", "file_name query parameter is required")
		return
	}

	url, err := h.parseService.GetPreviewURL(c.Request.Context(), documentID, fileName)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Export handles GET /api/v1/records/export. It streams an XLSX workbook
// of every persisted record summary.
func (h *RecordHandler) Export(c *gin.Context) {
	data, err := h.exportService.ExportRecordsXLSX(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	fileName := "shipment-records-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
