//go:build integration

package dbtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	trattamentoModel "fisiocatania_backend/internals/features/catalog/trattamenti/model"
	operatoreModel "fisiocatania_backend/internals/features/operators/operatori/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
)

// Clinic holds one row of each parent table.
type Clinic struct {
	Athlete   anagraficaModel.AnagraficaModel
	Region    distrettoModel.DistrettoModel
	Treatment trattamentoModel.TrattamentoModel
	Operator  operatoreModel.OperatoreModel
}

// SeedClinic inserts an athlete, a region, a treatment and an operator.
func SeedClinic(t *testing.T, db *gorm.DB) Clinic {
	t.Helper()
	c := Clinic{
		Athlete:   anagraficaModel.AnagraficaModel{Cognome: "Rossi", Nome: "Mario"},
		Region:    distrettoModel.DistrettoModel{Nome: "Ginocchio"},
		Treatment: trattamentoModel.TrattamentoModel{Nome: "Tecar"},
		Operator:  operatoreModel.OperatoreModel{Nome: "Anna", Cognome: "Verdi", Email: "anna@example.it", Password: "x"},
	}
	require.NoError(t, db.Create(&c.Athlete).Error)
	require.NoError(t, db.Create(&c.Region).Error)
	require.NoError(t, db.Create(&c.Treatment).Error)
	require.NoError(t, db.Create(&c.Operator).Error)
	return c
}

// AddSession inserts a therapy session for the clinic fixture on day (YYYY-MM-DD).
func (c Clinic) AddSession(t *testing.T, db *gorm.DB, day string) terapiaModel.TerapiaModel {
	t.Helper()
	d, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)
	op := c.Operator.ID
	m := terapiaModel.TerapiaModel{
		AnagraficaID:  c.Athlete.ID,
		DistrettoID:   c.Region.ID,
		TrattamentoID: c.Treatment.ID,
		Data:          datatypes.Date(d),
		OperatoreID:   &op,
	}
	require.NoError(t, db.Omit("Anagrafica", "Distretto", "Trattamento", "Operatore").Create(&m).Error)
	return m
}
