package service

import (
	"context"
	"time"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	helper "fisiocatania_backend/internals/helpers"
)

// Axes are the fixed row and column sets of the grid, in display order.
type Axes struct {
	Athletes []anagraficaModel.AnagraficaModel
	Regions  []distrettoModel.DistrettoModel
}

// LoadAxes reads every athlete and region, sorted for display.
func (s *GridService) LoadAxes(ctx context.Context) (Axes, error) {
	athletes, err := s.Store.ListAthletes(ctx)
	if err != nil {
		return Axes{}, helper.NewStorageError("list athletes", err)
	}
	regions, err := s.Store.ListRegions(ctx)
	if err != nil {
		return Axes{}, helper.NewStorageError("list regions", err)
	}
	SortAthletes(athletes)
	SortRegions(regions)
	return Axes{Athletes: athletes, Regions: regions}, nil
}

// DayGrid is what the grid page renders for one day.
type DayGrid struct {
	Date  time.Time
	Axes  Axes
	Cells map[string]string
}

func (s *GridService) Day(ctx context.Context, day time.Time) (*DayGrid, error) {
	axes, err := s.LoadAxes(ctx)
	if err != nil {
		return nil, err
	}
	cells, err := s.QueryGrid(ctx, day)
	if err != nil {
		return nil, err
	}
	return &DayGrid{Date: helper.TruncateDay(day), Axes: axes, Cells: cells}, nil
}
