// Package ingestion parses uploaded bulk-order files and manual text into
// order candidates. A parse failure aborts that file only; candidates already
// accumulated in the batch from other files are never touched.
package ingestion

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/datamart/bulkorder/internal/batch"
	"github.com/datamart/bulkorder/internal/detect"
	"github.com/datamart/bulkorder/internal/domain"
	"github.com/datamart/bulkorder/internal/repository"
	"github.com/datamart/bulkorder/internal/resolve"
)

var (
	// ErrEmptyFile flags an upload with fewer than 2 rows of raw data.
	ErrEmptyFile = errors.New("file has fewer than 2 rows of data")

	// ErrUnsupportedFormat flags an upload with an extension no parser
	// handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// FileReport is returned from a successful ingestion of one input.
type FileReport struct {
	FileID     string              `json:"file_id,omitempty"`
	FileName   string              `json:"file_name,omitempty"`
	RowsParsed int                 `json:"rows_parsed"`
	Notes      []string            `json:"notes,omitempty"`
	Summary    domain.BatchSummary `json:"summary"`
}

// Service wires the parsers, column detection and the row resolver to the
// candidate store.
type Service struct {
	batchRepo *repository.BatchRepo
	candRepo  *repository.CandidateRepo
	resolver  *resolve.Resolver
}

func NewService(
	batchRepo *repository.BatchRepo,
	candRepo *repository.CandidateRepo,
	resolver *resolve.Resolver,
) *Service {
	return &Service{
		batchRepo: batchRepo,
		candRepo:  candRepo,
		resolver:  resolver,
	}
}

// IngestFile parses an uploaded spreadsheet or CSV, detects the phone and
// capacity columns, resolves every data row and appends the candidates to
// the batch.
func (s *Service) IngestFile(batchID, fileName string, data []byte) (*FileReport, error) {
	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".xlsx", ".xlsm", ".xls":
		rows, err = ParseXLSX(data)
	case ".csv", ".txt":
		rows, err = ParseCSV(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", fileName, err)
	}

	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	cols, err := detect.DetectColumns(rows)
	if err != nil {
		return nil, err
	}

	res := s.resolver.ResolveTable(rows, cols, detect.DataStartRow(rows, cols))

	fileID := uuid.NewString()
	s.stamp(res.Candidates, batchID, fileID, fileName)

	if _, err := s.candRepo.BulkInsert(res.Candidates); err != nil {
		return nil, fmt.Errorf("store candidates: %w", err)
	}

	summary, err := s.summarize(batchID)
	if err != nil {
		return nil, err
	}

	log.Printf("[ingestion] Ingested %s into batch %s: %d rows (%d valid)",
		fileName, batchID, len(res.Candidates), summary.Valid)

	return &FileReport{
		FileID:     fileID,
		FileName:   fileName,
		RowsParsed: len(res.Candidates),
		Notes:      res.Notes,
		Summary:    summary,
	}, nil
}

// IngestManual resolves "phone capacity" lines typed by the user. Column
// detection is bypassed; token positions are fixed.
func (s *Service) IngestManual(batchID, text string) (*FileReport, error) {
	if _, err := s.batchRepo.GetByID(batchID); err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	res := s.resolver.ResolveText(text)
	s.stamp(res.Candidates, batchID, "", "")

	if len(res.Candidates) > 0 {
		if _, err := s.candRepo.BulkInsert(res.Candidates); err != nil {
			return nil, fmt.Errorf("store candidates: %w", err)
		}
	}

	summary, err := s.summarize(batchID)
	if err != nil {
		return nil, err
	}

	log.Printf("[ingestion] Added %d manual rows to batch %s (%d valid in batch)",
		len(res.Candidates), batchID, summary.Valid)

	return &FileReport{
		RowsParsed: len(res.Candidates),
		Notes:      res.Notes,
		Summary:    summary,
	}, nil
}

func (s *Service) stamp(cands []domain.OrderCandidate, batchID, fileID, fileName string) {
	for i := range cands {
		cands[i].ID = uuid.NewString()
		cands[i].BatchID = batchID
		cands[i].FileID = fileID
		cands[i].FileName = fileName
	}
}

func (s *Service) summarize(batchID string) (domain.BatchSummary, error) {
	cands, err := s.candRepo.ListByBatch(batchID, repository.FilterAll)
	if err != nil {
		return domain.BatchSummary{}, fmt.Errorf("list candidates: %w", err)
	}
	return batch.Summarize(cands), nil
}
