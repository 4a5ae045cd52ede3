package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
)

type cellKey struct {
	day     string
	athlete uint
	region  uint
}

// MemoryGridStore is a GridStore kept in process, with the same uniqueness
// rules as the table. Tests use it; Err, when set, fails every call.
type MemoryGridStore struct {
	mu       sync.Mutex
	athletes map[uint]anagraficaModel.AnagraficaModel
	regions  map[uint]distrettoModel.DistrettoModel
	cells    map[cellKey]reportModel.ReportSiglaModel
	nextID   uint

	Err error
}

func NewMemoryGridStore() *MemoryGridStore {
	return &MemoryGridStore{
		athletes: map[uint]anagraficaModel.AnagraficaModel{},
		regions:  map[uint]distrettoModel.DistrettoModel{},
		cells:    map[cellKey]reportModel.ReportSiglaModel{},
	}
}

func (m *MemoryGridStore) AddAthlete(a anagraficaModel.AnagraficaModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.athletes[a.ID] = a
}

func (m *MemoryGridStore) AddRegion(r distrettoModel.DistrettoModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regions[r.ID] = r
}

// Len counts every stored cell.
func (m *MemoryGridStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells)
}

func keyOf(day time.Time, a, r uint) cellKey {
	return cellKey{day: day.Format("2006-01-02"), athlete: a, region: r}
}

func (m *MemoryGridStore) AthleteExists(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.athletes[id]
	return ok, nil
}

func (m *MemoryGridStore) RegionExists(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.regions[id]
	return ok, nil
}

func (m *MemoryGridStore) ListAthletes(context.Context) ([]anagraficaModel.AnagraficaModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]anagraficaModel.AnagraficaModel, 0, len(m.athletes))
	for _, a := range m.athletes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryGridStore) ListRegions(context.Context) ([]distrettoModel.DistrettoModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]distrettoModel.DistrettoModel, 0, len(m.regions))
	for _, r := range m.regions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryGridStore) CellsOn(ctx context.Context, day time.Time) ([]reportModel.ReportSiglaModel, error) {
	return m.CellsBetween(ctx, day, day)
}

func (m *MemoryGridStore) CellsBetween(_ context.Context, from, to time.Time) ([]reportModel.ReportSiglaModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	lo, hi := from.Format("2006-01-02"), to.Format("2006-01-02")
	out := []reportModel.ReportSiglaModel{}
	for k, c := range m.cells {
		if k.day >= lo && k.day <= hi {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Day().Equal(b.Day()) {
			return a.Day().Before(b.Day())
		}
		if a.AnagraficaID != b.AnagraficaID {
			return a.AnagraficaID < b.AnagraficaID
		}
		return a.DistrettoID < b.DistrettoID
	})
	return out, nil
}

func (m *MemoryGridStore) UpsertCell(_ context.Context, cell *reportModel.ReportSiglaModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	k := keyOf(cell.Day(), cell.AnagraficaID, cell.DistrettoID)
	if prev, ok := m.cells[k]; ok {
		prev.Sigla, prev.Operatore, prev.UpdatedAt = cell.Sigla, cell.Operatore, cell.UpdatedAt
		m.cells[k] = prev
		*cell = prev
		return nil
	}
	m.nextID++
	cell.ID = m.nextID
	m.cells[k] = *cell
	return nil
}

func (m *MemoryGridStore) DeleteCell(_ context.Context, day time.Time, athleteID, regionID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.cells, keyOf(day, athleteID, regionID))
	return nil
}

func (m *MemoryGridStore) CopyDay(_ context.Context, from, to time.Time, operatore string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	src := from.Format("2006-01-02")
	var inserted int64
	for k, c := range m.cells {
		if k.day != src || c.Sigla == "" {
			continue
		}
		tk := keyOf(to, k.athlete, k.region)
		if _, taken := m.cells[tk]; taken {
			continue
		}
		m.nextID++
		m.cells[tk] = reportModel.ReportSiglaModel{
			ID:           m.nextID,
			Data:         datatypes.Date(to),
			AnagraficaID: k.athlete,
			DistrettoID:  k.region,
			Sigla:        c.Sigla,
			Operatore:    operatore,
			UpdatedAt:    at,
		}
		inserted++
	}
	return inserted, nil
}
