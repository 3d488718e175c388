package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lading/internal/domain"
	"lading/internal/export"
	"lading/internal/handler"
	"lading/internal/service"
)

// stubRecordRepo backs the export service in Export tests. Only List is
// exercised there.
type stubRecordRepo struct {
	rows []domain.RecordRow
}

func (s *stubRecordRepo) Create(_ context.Context, _ *domain.RecordRow) error     { return nil }
func (s *stubRecordRepo) CreateBatch(_ context.Context, _ []domain.RecordRow) error { return nil }
func (s *stubRecordRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.RecordRow, error) {
	return nil, domain.ErrRecordNotFound
}
func (s *stubRecordRepo) ListByDocument(_ context.Context, _ uuid.UUID) ([]domain.RecordRow, error) {
	return nil, nil
}
func (s *stubRecordRepo) List(_ context.Context, offset, _ int) ([]domain.RecordRow, int, error) {
	if offset >= len(s.rows) {
		return nil, len(s.rows), nil
	}
	return s.rows[offset:], len(s.rows), nil
}
func (s *stubRecordRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func recordRouter(svc service.ParseService, exportSvc *export.Service) *gin.Engine {
	h := handler.NewRecordHandler(svc, exportSvc)
	r := gin.New()
	r.GET("/records", h.List)
	r.GET("/records/export", h.Export)
	r.GET("/records/:id", h.Get)
	r.DELETE("/records/:id", h.Delete)
	r.GET("/documents/:id/records", h.ListByDocument)
	r.GET("/documents/:id/preview", h.Preview)
	return r
}

func TestRecordList_Paginated(t *testing.T) {
	svc := &fakeParseService{rows: []domain.RecordRow{
		{ID: uuid.New(), RecordID: "doc-001", BOLNumber: "445120"},
		{ID: uuid.New(), RecordID: "doc-002", BOLNumber: "445121"},
	}}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records?offset=0&limit=10", http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.Limit)
}

func TestRecordList_ClampsPagination(t *testing.T) {
	svc := &fakeParseService{}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records?offset=-5&limit=9999", http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 0, resp.Meta.Offset)
	assert.Equal(t, 50, resp.Meta.Limit)
}

func TestRecordGet_InvalidID(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records/not-a-uuid", http.NoBody)
	recordRouter(&fakeParseService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestRecordGet_NotFound(t *testing.T) {
	svc := &fakeParseService{err: domain.ErrRecordNotFound}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records/"+uuid.NewString(), http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "RECORD_NOT_FOUND", resp.Error.Code)
}

func TestRecordGet_Success(t *testing.T) {
	id := uuid.New()
	svc := &fakeParseService{row: &domain.RecordRow{ID: id, BOLNumber: "445120"}}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records/"+id.String(), http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "445120")
}

func TestRecordDelete_Success(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/records/"+uuid.NewString(), http.NoBody)
	recordRouter(&fakeParseService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListByDocument_Success(t *testing.T) {
	documentID := uuid.New()
	svc := &fakeParseService{rows: []domain.RecordRow{
		{DocumentID: documentID, RecordID: "doc-001"},
	}}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/"+documentID.String()+"/records", http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "doc-001")
}

func TestPreview_RequiresFileName(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/"+uuid.NewString()+"/preview", http.NoBody)
	recordRouter(&fakeParseService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE_NAME", resp.Error.Code)
}

func TestPreview_Success(t *testing.T) {
	svc := &fakeParseService{url: "https://bucket.example.com/documents/x/shipment.pdf?signed"}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/documents/"+uuid.NewString()+"/preview?file_name=shipment.pdf", http.NoBody)
	recordRouter(svc, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed")
}

func TestExport_ReturnsWorkbook(t *testing.T) {
	repo := &stubRecordRepo{rows: []domain.RecordRow{
		{ID: uuid.New(), RecordID: "doc-001", BOLNumber: "445120", SourceFileName: "shipment.pdf"},
	}}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/records/export", http.NoBody)
	recordRouter(&fakeParseService{}, export.NewService(repo)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shipment-records-")
	assert.NotEmpty(t, w.Body.Bytes())
}
