package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"lading/internal/service"
)

// ParseHandler handles document parsing endpoints.
type ParseHandler struct {
	parseService service.ParseService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(parseService service.ParseService) *ParseHandler {
	return &ParseHandler{parseService: parseService}
}

// Parse handles POST /api/v1/parse. It extracts a single shipment record
// from the uploaded file.
func (h *ParseHandler) Parse(c *gin.Context) {
	input, ok := h.readFile(c)
	if !ok {
		return
	}

	result, err := h.parseService.ParseDocument(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// ParseMulti handles POST /api/v1/parse/multi. It extracts every record
// from a file that may hold several bills of lading.
func (h *ParseHandler) ParseMulti(c *gin.Context) {
	input, ok := h.readFile(c)
	if !ok {
		return
	}

	result, err := h.parseService.ParseDocumentMulti(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// ParseBatch handles POST /api/v1/parse/batch. Every part of the multipart
// "files" field is parsed concurrently.
func (h *ParseHandler) ParseBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "multipart form with files field is required")
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILES", "files field is required")
		return
	}

	var inputs []service.ParseFileInput
	for _, header := range headers {
		content, err := readMultipartFile(header)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read file "+header.Filename)
			return
		}
		inputs = append(inputs, service.ParseFileInput{
			FileName:    header.Filename,
			Content:     content,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	result, err := h.parseService.ParseBatch(c.Request.Context(), inputs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (h *ParseHandler) readFile(c *gin.Context) (service.ParseFileInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return service.ParseFileInput{}, false
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return service.ParseFileInput{}, false
	}

	return service.ParseFileInput{
		FileName:    header.Filename,
		Content:     content,
		ContentType: header.Header.Get("Content-Type"),
	}, true
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
