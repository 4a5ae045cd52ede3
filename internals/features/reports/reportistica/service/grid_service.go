package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	"fisiocatania_backend/internals/features/reports/reportistica/repository"
	helper "fisiocatania_backend/internals/helpers"
)

// GridService owns the status grid rules: one cell per key, empty code
// deletes, copy-forward only fills gaps.
type GridService struct {
	Store repository.GridStore
	Now   func() time.Time
}

func NewGridService(store repository.GridStore) *GridService {
	return &GridService{Store: store, Now: time.Now}
}

// CellInput is a validated cell edit.
type CellInput struct {
	Date      time.Time
	AthleteID uint
	RegionID  uint
	Sigla     string
	Operatore string
}

// GridKey renders the "athleteId|regionId" key used by QueryGrid.
func GridKey(athleteID, regionID uint) string {
	return fmt.Sprintf("%d|%d", athleteID, regionID)
}

// UpsertCell writes or clears one cell. It returns the stored row, or nil
// when the cell was cleared.
func (s *GridService) UpsertCell(ctx context.Context, in CellInput) (*reportModel.ReportSiglaModel, error) {
	if in.AthleteID == 0 {
		return nil, helper.NewValidationError("anagrafica_id", "must be a positive integer")
	}
	if in.RegionID == 0 {
		return nil, helper.NewValidationError("distretto_id", "must be a positive integer")
	}
	sigla := reportModel.NormalizeSigla(in.Sigla)
	if sigla != "" && !reportModel.IsValidSigla(sigla) {
		return nil, helper.NewValidationError("sigla", "unknown code %q, expected one of %s", sigla, strings.Join(reportModel.Sigle, ", "))
	}
	day := helper.TruncateDay(in.Date)

	if sigla == "" {
		if err := s.Store.DeleteCell(ctx, day, in.AthleteID, in.RegionID); err != nil {
			return nil, helper.NewStorageError("delete cell", err)
		}
		return nil, nil
	}

	if err := s.ensureRefs(ctx, in.AthleteID, in.RegionID); err != nil {
		return nil, err
	}

	cell := &reportModel.ReportSiglaModel{
		Data:         datatypes.Date(day),
		AnagraficaID: in.AthleteID,
		DistrettoID:  in.RegionID,
		Sigla:        sigla,
		Operatore:    in.Operatore,
		UpdatedAt:    s.Now(),
	}
	if err := s.Store.UpsertCell(ctx, cell); err != nil {
		return nil, helper.NewStorageError("upsert cell", err)
	}
	return cell, nil
}

func (s *GridService) ensureRefs(ctx context.Context, athleteID, regionID uint) error {
	ok, err := s.Store.AthleteExists(ctx, athleteID)
	if err != nil {
		return helper.NewStorageError("lookup athlete", err)
	}
	if !ok {
		return helper.NewValidationError("anagrafica_id", "athlete %d does not exist", athleteID)
	}
	ok, err = s.Store.RegionExists(ctx, regionID)
	if err != nil {
		return helper.NewStorageError("lookup region", err)
	}
	if !ok {
		return helper.NewValidationError("distretto_id", "region %d does not exist", regionID)
	}
	return nil
}

// CopyForward fills the gaps of target with the cells of the day before.
func (s *GridService) CopyForward(ctx context.Context, target time.Time, operatore string) (int64, error) {
	target = helper.TruncateDay(target)
	source := target.AddDate(0, 0, -1)
	n, err := s.Store.CopyDay(ctx, source, target, operatore, s.Now())
	if err != nil {
		return 0, helper.NewStorageError("copy day", err)
	}
	return n, nil
}

// QueryGrid returns every recorded cell of day keyed by GridKey.
func (s *GridService) QueryGrid(ctx context.Context, day time.Time) (map[string]string, error) {
	rows, err := s.Store.CellsOn(ctx, helper.TruncateDay(day))
	if err != nil {
		return map[string]string{}, helper.NewStorageError("query grid", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		if r.Sigla == "" {
			continue
		}
		out[GridKey(r.AnagraficaID, r.DistrettoID)] = r.Sigla
	}
	return out, nil
}
