package attendance

import (
	"context"
	"sort"

	"school-admin-db/internal/config"
	"school-admin-db/internal/db"
	"school-admin-db/internal/excel"
	"school-admin-db/internal/logger"
	"school-admin-db/internal/model"
	"school-admin-db/internal/settings"

	"github.com/rs/zerolog"
)

// Positional fallbacks used when the header text matches no keyword. The
// attendance path never hard-fails on column names, only on missing
// date/time per individual row.
const (
	fallbackName  = 0
	fallbackGrade = 1
	fallbackClass = 2
	fallbackID    = 3
	fallbackDate  = 4
	fallbackTime  = 5
)

// Service reconciles uploaded attendance sheets: explicit rows become
// on-time/late facts, and every student missing from a date seen in the
// batch gets an absence back-filled.
type Service struct {
	repo      db.Repository
	settings  *settings.Service
	chunkSize int
	log       zerolog.Logger
}

func NewService(repo db.Repository, st *settings.Service, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		settings:  st,
		chunkSize: cfg.Import.ChunkSize,
		log:       logger.Get(),
	}
}

func (s *Service) Upload(ctx context.Context, data []byte, overrideDate string) (*model.AttendanceResult, error) {
	wb, err := excel.Open(data)
	if err != nil {
		return nil, err
	}

	cols := excel.ResolveColumns(wb.Header())
	nameIdx := cols.IndexOr(excel.FieldName, fallbackName)
	gradeIdx := cols.IndexOr(excel.FieldGrade, fallbackGrade)
	classIdx := cols.IndexOr(excel.FieldClass, fallbackClass)
	idIdx := cols.IndexOr(excel.FieldNationalID, fallbackID)
	dateIdx := cols.IndexOr(excel.FieldDate, fallbackDate)
	timeIdx := cols.IndexOr(excel.FieldTime, fallbackTime)

	threshold := s.settings.LateThreshold(ctx)

	// One directory snapshot per batch; rows discovered mid-batch are
	// added to it so later rows and the back-fill see them.
	students, err := s.repo.ListDirectory(ctx, model.KindStudent)
	if err != nil {
		return nil, err
	}
	idByNationalID := make(map[string]int64, len(students))
	allIDs := make([]int64, 0, len(students))
	for _, st := range students {
		idByNationalID[st.NationalID] = st.ID
		allIDs = append(allIDs, st.ID)
	}

	result := &model.AttendanceResult{}
	presence := make(map[string]map[int64]struct{})
	var facts []model.AttendanceFact

	for _, rec := range wb.Records() {
		nationalID := rec.Cell(idIdx)
		if nationalID == "" {
			result.RowsSkipped++
			continue
		}

		date := NormalizeDate(rec.Cell(dateIdx), overrideDate)
		if date == "" {
			result.RowsSkipped++
			continue
		}

		clock := NormalizeTime(rec.Cell(timeIdx))
		if clock == "" {
			result.RowsSkipped++
			continue
		}

		studentID, known := idByNationalID[nationalID]
		if !known {
			name := rec.Cell(nameIdx)
			if name == "" {
				result.RowsSkipped++
				continue
			}
			studentID, err = s.repo.EnsureDirectoryRecord(ctx, model.DirectoryRecord{
				Kind:       model.KindStudent,
				NationalID: nationalID,
				Name:       name,
				Grade:      rec.Cell(gradeIdx),
				ClassName:  rec.Cell(classIdx),
			})
			if err != nil {
				return nil, err
			}
			idByNationalID[nationalID] = studentID
			allIDs = append(allIDs, studentID)
		}

		if presence[date] == nil {
			presence[date] = make(map[int64]struct{})
		}
		presence[date][studentID] = struct{}{}

		// Strict greater-than: arriving exactly at the threshold is
		// still on time. Both operands are zero-padded HH:MM, so the
		// string comparison is a minute-of-day comparison.
		status, points := model.StatusOnTime, model.PointsOnTime
		if clock > threshold {
			status, points = model.StatusLate, model.PointsLate
		}

		facts = append(facts, model.AttendanceFact{
			StudentID: studentID,
			Date:      date,
			Time:      clock,
			Status:    status,
			Points:    points,
		})
	}

	// Explicit facts overwrite whatever is stored for their key. A chunk
	// failure aborts the request; earlier chunks stay committed, and a
	// re-run is safe because every write is a natural-key upsert.
	for start := 0; start < len(facts); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(facts) {
			end = len(facts)
		}
		if err := s.repo.UpsertAttendanceFacts(ctx, facts[start:end]); err != nil {
			return nil, err
		}
		result.RowsWritten += end - start
	}

	absences := s.backfillCandidates(presence, allIDs)
	for start := 0; start < len(absences); start += s.chunkSize {
		end := start + s.chunkSize
		if end > len(absences) {
			end = len(absences)
		}
		added, err := s.repo.InsertAbsences(ctx, absences[start:end])
		if err != nil {
			return nil, err
		}
		result.AbsencesAdded += int(added)
	}

	for date := range presence {
		result.DatesProcessed = append(result.DatesProcessed, date)
	}
	sort.Strings(result.DatesProcessed)

	s.log.Info().
		Strs("dates", result.DatesProcessed).
		Int("rows_written", result.RowsWritten).
		Int("rows_skipped", result.RowsSkipped).
		Int("absences_added", result.AbsencesAdded).
		Msg("attendance upload reconciled")

	return result, nil
}

// backfillCandidates computes, per date seen in the batch, the complement
// of the presence set against the full directory. Candidates are written
// with insert-ignore so an explicit fact for the same key is never
// overwritten.
func (s *Service) backfillCandidates(presence map[string]map[int64]struct{}, allIDs []int64) []model.AttendanceFact {
	var absences []model.AttendanceFact
	for date, present := range presence {
		for _, id := range allIDs {
			if _, ok := present[id]; ok {
				continue
			}
			absences = append(absences, model.AttendanceFact{
				StudentID: id,
				Date:      date,
				Time:      model.AbsentTime,
				Status:    model.StatusAbsent,
				Points:    model.PointsAbsent,
			})
		}
	}
	return absences
}
