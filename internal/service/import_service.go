package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"santripay/internal/config"
	"santripay/internal/dto"
	"santripay/internal/importer"

	"github.com/rs/zerolog/log"
)

// ErrNotCSV rejects uploads that are not parseable CSV text (xlsx binaries,
// arbitrary bytes). Exported so the handler can map it to a 400.
var ErrNotCSV = errors.New("File bukan CSV yang valid")

type ImportService interface {
	// ImportRows imports loosely-keyed spreadsheet rows. Row failures are
	// collected, not fatal — the batch always runs to completion.
	ImportRows(ctx context.Context, rows []importer.Row) *dto.ImportResult
	// ImportCSV parses an uploaded CSV file and imports its rows.
	ImportCSV(ctx context.Context, data []byte) (*dto.ImportResult, error)
}

type importService struct {
	santri     SantriService
	normalizer *importer.Normalizer
}

func NewImportService(santri SantriService, cfg *config.Config) ImportService {
	defaultPassword := "123456"
	if cfg != nil && cfg.DefaultImportPassword != "" {
		defaultPassword = cfg.DefaultImportPassword
	}
	return &importService{
		santri:     santri,
		normalizer: importer.New(nil, defaultPassword),
	}
}

func (s *importService) ImportRows(ctx context.Context, rows []importer.Row) *dto.ImportResult {
	result := &dto.ImportResult{
		Results: []dto.SantriResponse{},
		Errors:  []dto.ImportRowError{},
	}

	for i, row := range rows {
		normalized := s.normalizer.Normalize(row)

		if missing := normalized.MissingFields(); len(missing) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				NIS:   normalized.NIS,
				Error: fmt.Sprintf("baris %d: kolom wajib kosong: %s", i+1, strings.Join(missing, ", ")),
			})
			continue
		}

		created, err := s.santri.Create(ctx, dto.CreateSantriRequest{
			NIS:      normalized.NIS,
			Nama:     normalized.Nama,
			Kelas:    normalized.Kelas,
			Asrama:   normalized.Asrama,
			Wali:     normalized.Wali,
			Status:   normalized.Status,
			Email:    normalized.Email,
			Password: normalized.Password,
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.ImportRowError{
				NIS:   normalized.NIS,
				Error: err.Error(),
			})
			continue
		}

		result.Success++
		result.Results = append(result.Results, *created)
	}

	log.Info().
		Int("success", result.Success).
		Int("failed", result.Failed).
		Msg("bulk import finished")

	return result
}

func (s *importService) ImportCSV(ctx context.Context, data []byte) (*dto.ImportResult, error) {
	// xlsx and other zip-based formats start with "PK" — reject early with a
	// clear message instead of feeding binary to the CSV reader.
	if bytes.HasPrefix(data, []byte("PK")) || !utf8.Valid(data) {
		return nil, ErrNotCSV
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, ErrNotCSV
	}
	if len(records) < 2 {
		// Header only (or empty file) — nothing to import
		return &dto.ImportResult{
			Results: []dto.SantriResponse{},
			Errors:  []dto.ImportRowError{},
		}, nil
	}

	// Resolve the header row once; unrecognized columns are carried under
	// their raw name so the alias table still gets a chance per row.
	header := records[0]
	fields := make([]string, len(header))
	for i, h := range header {
		if field, ok := s.normalizer.FieldForHeader(h); ok {
			fields[i] = field
		} else {
			fields[i] = strings.TrimSpace(h)
		}
	}

	rows := make([]importer.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := importer.Row{}
		for i, cell := range record {
			if i < len(fields) && fields[i] != "" {
				row[fields[i]] = cell
			}
		}
		rows = append(rows, row)
	}

	return s.ImportRows(ctx, rows), nil
}
