package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lading/internal/config"
	"lading/internal/docai"
	"lading/internal/domain"
	"lading/internal/extract"
	"lading/internal/port"
	"lading/internal/validator"
)

// ParseFileInput is the DTO for parse requests.
type ParseFileInput struct {
	FileName    string
	Content     []byte
	ContentType string
}

// ParsedRecord pairs one extracted record with its validation warnings.
type ParsedRecord struct {
	Record   *domain.ShipmentRecord `json:"record"`
	Warnings []string               `json:"warnings"`
}

// ParseResult is the outcome of parsing one uploaded document.
type ParseResult struct {
	DocumentID       uuid.UUID      `json:"document_id"`
	FileName         string         `json:"file_name"`
	Records          []ParsedRecord `json:"records"`
	PreviewURL       string         `json:"preview_url,omitempty"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
}

// ParseService defines the document parsing contract.
type ParseService interface {
	ParseDocument(ctx context.Context, input ParseFileInput) (*ParseResult, error)
	ParseDocumentMulti(ctx context.Context, input ParseFileInput) (*ParseResult, error)
	ParseBatch(ctx context.Context, inputs []ParseFileInput) (*BatchResult, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.RecordRow, error)
	ListRecords(ctx context.Context, offset, limit int) ([]domain.RecordRow, int, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.RecordRow, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
	GetPreviewURL(ctx context.Context, documentID uuid.UUID, fileName string) (string, error)
}

type parseService struct {
	analyzer   port.DocumentAnalyzer
	storage    port.ObjectStorage
	recordRepo port.RecordRepository
	engine     *extract.Engine
	validator  *validator.Engine
	s3Cfg      *config.S3Config
	parseCfg   *config.ParseConfig
}

// NewParseService creates a new ParseService implementation.
func NewParseService(
	analyzer port.DocumentAnalyzer,
	storage port.ObjectStorage,
	recordRepo port.RecordRepository,
	s3Cfg *config.S3Config,
	parseCfg *config.ParseConfig,
) ParseService {
	return &parseService{
		analyzer:   analyzer,
		storage:    storage,
		recordRepo: recordRepo,
		engine:     extract.NewEngine(parseCfg.DefaultCountry),
		validator:  validator.NewEngine(parseCfg.MinConfidence),
		s3Cfg:      s3Cfg,
		parseCfg:   parseCfg,
	}
}

// ParseDocument extracts a single record from one uploaded file.
func (s *parseService) ParseDocument(ctx context.Context, input ParseFileInput) (*ParseResult, error) {
	start := time.Now()
	documentID, doc, err := s.ingest(ctx, input)
	if err != nil {
		return nil, err
	}

	record, err := s.engine.ExtractRecord(doc, documentID.String())
	if err != nil {
		return nil, fmt.Errorf("extracting record: %w", err)
	}
	record.Metadata["source_file_name"] = input.FileName

	parsed := ParsedRecord{Record: record, Warnings: s.validator.Validate(record)}
	if err := s.persist(ctx, documentID, input.FileName, parsed); err != nil {
		return nil, err
	}

	return &ParseResult{
		DocumentID:       documentID,
		FileName:         input.FileName,
		Records:          []ParsedRecord{parsed},
		PreviewURL:       s.previewURL(ctx, documentID, input.FileName),
		ProcessingTimeMS: time.Since(start).Milliseconds(),
	}, nil
}

// ParseDocumentMulti extracts every record from a file that may hold
// several bills of lading.
func (s *parseService) ParseDocumentMulti(ctx context.Context, input ParseFileInput) (*ParseResult, error) {
	start := time.Now()
	documentID, doc, err := s.ingest(ctx, input)
	if err != nil {
		return nil, err
	}

	records, err := s.engine.ExtractRecords(doc, documentID.String())
	if err != nil {
		return nil, fmt.Errorf("extracting records: %w", err)
	}

	result := &ParseResult{DocumentID: documentID, FileName: input.FileName}
	var rows []domain.RecordRow
	for _, record := range records {
		record.Metadata["source_file_name"] = input.FileName
		parsed := ParsedRecord{Record: record, Warnings: s.validator.Validate(record)}
		row, err := recordRowFrom(documentID, input.FileName, parsed)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
		result.Records = append(result.Records, parsed)
	}

	// All records from one document land together or not at all.
	if err := s.recordRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("persisting %d records: %w", len(rows), err)
	}
	for i := range rows {
		s.archivePayload(ctx, rows[i].RecordID, rows[i].Payload)
	}
	result.PreviewURL = s.previewURL(ctx, documentID, input.FileName)
	result.ProcessingTimeMS = time.Since(start).Milliseconds()

	log.Printf("parseService.ParseDocumentMulti: document %s yielded %d records", documentID, len(result.Records))
	return result, nil
}

// previewURL presigns the original upload. A presign failure degrades to an
// empty URL instead of failing a parse that already succeeded.
func (s *parseService) previewURL(ctx context.Context, documentID uuid.UUID, fileName string) string {
	url, err := s.GetPreviewURL(ctx, documentID, fileName)
	if err != nil {
		log.Printf("parseService.previewURL: presign failed for document %s: %v", documentID, err)
		return ""
	}
	return url
}

// ingest validates the file, stores the original in object storage, and
// sends the bytes to the analysis processor.
func (s *parseService) ingest(ctx context.Context, input ParseFileInput) (uuid.UUID, *docai.Document, error) {
	contentType, err := ValidateFile(input.Content, input.FileName, s.s3Cfg.MaxFileSizeMB*1024*1024)
	if err != nil {
		return uuid.UUID{}, nil, err
	}
	if input.ContentType == "" {
		input.ContentType = contentType
	}

	documentID := uuid.New()
	key := documentKey(documentID.String(), input.FileName)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(input.Content),
		ContentType: input.ContentType,
		Size:        int64(len(input.Content)),
	}); err != nil {
		log.Printf("parseService.ingest: upload failed for %s: %v", input.FileName, err)
		return uuid.UUID{}, nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	doc, err := s.analyzer.Analyze(ctx, input.Content, input.ContentType)
	if err != nil {
		return uuid.UUID{}, nil, fmt.Errorf("analyzing document: %w", err)
	}
	return documentID, doc, nil
}

func (s *parseService) persist(ctx context.Context, documentID uuid.UUID, fileName string, parsed ParsedRecord) error {
	row, err := recordRowFrom(documentID, fileName, parsed)
	if err != nil {
		return err
	}
	if err := s.recordRepo.Create(ctx, row); err != nil {
		return fmt.Errorf("persisting record %s: %w", parsed.Record.RecordID, err)
	}
	s.archivePayload(ctx, row.RecordID, row.Payload)
	return nil
}

// archivePayload stores the full parsed payload next to the original file.
// The row is the source of truth; a failed archive write is logged, not fatal.
func (s *parseService) archivePayload(ctx context.Context, recordID string, payload []byte) {
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         parsedKey(recordID),
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
		Size:        int64(len(payload)),
	}); err != nil {
		log.Printf("parseService.archivePayload: archiving parsed payload for %s failed: %v", recordID, err)
	}
}

// recordRowFrom flattens an extracted record into its persisted summary row.
func recordRowFrom(documentID uuid.UUID, fileName string, parsed ParsedRecord) (*domain.RecordRow, error) {
	payload, err := json.Marshal(parsed.Record)
	if err != nil {
		return nil, fmt.Errorf("marshaling record payload: %w", err)
	}
	warnings := parsed.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("marshaling warnings: %w", err)
	}

	row := &domain.RecordRow{
		DocumentID:        documentID,
		RecordID:          parsed.Record.RecordID,
		BOLNumber:         parsed.Record.BOLNumber,
		CarrierName:       parsed.Record.CarrierName,
		ShipDate:          parsed.Record.ShipDate,
		OverallConfidence: parsed.Record.OverallConfidence(),
		Warnings:          warningsJSON,
		Payload:           payload,
		SourceFileName:    fileName,
	}
	if parsed.Record.Shipper != nil {
		row.ShipperName = parsed.Record.Shipper.Name
	}
	if parsed.Record.Consignee != nil {
		row.ConsigneeName = parsed.Record.Consignee.Name
	}
	return row, nil
}

func (s *parseService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.RecordRow, error) {
	return s.recordRepo.GetByID(ctx, id)
}

func (s *parseService) ListRecords(ctx context.Context, offset, limit int) ([]domain.RecordRow, int, error) {
	return s.recordRepo.List(ctx, offset, limit)
}

func (s *parseService) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]domain.RecordRow, error) {
	return s.recordRepo.ListByDocument(ctx, documentID)
}

// DeleteRecord removes the persisted row and the archived parsed payload.
func (s *parseService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	row, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.s3Cfg.Bucket, parsedKey(row.RecordID)); err != nil {
		log.Printf("parseService.DeleteRecord: removing archived payload for %s failed: %v", row.RecordID, err)
	}
	return nil
}

func (s *parseService) GetPreviewURL(ctx context.Context, documentID uuid.UUID, fileName string) (string, error) {
	key := documentKey(documentID.String(), fileName)
	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("generating preview URL: %w", err)
	}
	return url, nil
}

func documentKey(documentID, fileName string) string {
	return fmt.Sprintf("documents/%s/%s", documentID, fileName)
}

func parsedKey(recordID string) string {
	return fmt.Sprintf("parsed/%s/data.json", recordID)
}
