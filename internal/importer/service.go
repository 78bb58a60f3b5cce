package importer

import (
	"context"

	"school-admin-db/internal/config"
	"school-admin-db/internal/db"
	"school-admin-db/internal/excel"
	"school-admin-db/internal/logger"
	"school-admin-db/internal/model"

	"github.com/rs/zerolog"
)

// Service reconciles uploaded roster spreadsheets against the directory.
// The same engine serves students, teachers and the exit-system import;
// only the record kind differs.
type Service struct {
	repo      db.Repository
	chunkSize int
	log       zerolog.Logger
}

func NewService(repo db.Repository, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		chunkSize: cfg.Import.ChunkSize,
		log:       logger.Get(),
	}
}

// Import parses the workbook, resolves the header and upserts every data
// row keyed on national ID. Name and ID columns are mandatory: when either
// is unresolved the import aborts before any row is read. A row missing
// its name or ID is skipped silently; a row whose write fails is counted
// and logged, never fatal to the batch.
func (s *Service) Import(ctx context.Context, kind model.RecordKind, data []byte) (*model.ImportResult, error) {
	wb, err := excel.Open(data)
	if err != nil {
		return nil, err
	}

	cols := excel.ResolveColumns(wb.Header())
	if err := cols.Require(excel.FieldName, excel.FieldNationalID); err != nil {
		return nil, err
	}

	rows := wb.Rows()
	result := &model.ImportResult{}
	batch := make([]model.DirectoryRecord, 0, len(rows))
	for _, row := range rows[1:] {
		name := cols.Value(row, excel.FieldName)
		nationalID := cols.Value(row, excel.FieldNationalID)
		if name == "" || nationalID == "" {
			result.Skipped++
			continue
		}

		batch = append(batch, model.DirectoryRecord{
			Kind:       kind,
			NationalID: nationalID,
			Name:       name,
			Grade:      cols.Value(row, excel.FieldGrade),
			ClassName:  cols.Value(row, excel.FieldClass),
			Mobile:     cols.Value(row, excel.FieldMobile),
			Subject:    cols.Value(row, excel.FieldSubject),
		})
	}

	for start := 0; start < len(batch); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(batch) {
			end = len(batch)
		}
		chunk := batch[start:end]

		if err := s.repo.UpsertDirectoryChunk(ctx, chunk); err == nil {
			result.Written += len(chunk)
			continue
		}

		// Chunk write failed, retry row by row so one bad row does not
		// take its neighbours down with it.
		for _, rec := range chunk {
			if err := s.repo.UpsertDirectoryRecord(ctx, rec); err != nil {
				result.Failed++
				s.log.Warn().Err(err).
					Str("national_id", rec.NationalID).
					Msg("roster row write failed")
				continue
			}
			result.Written++
		}
	}

	s.log.Info().
		Str("kind", string(kind)).
		Int("written", result.Written).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("roster import finished")

	return result, nil
}
