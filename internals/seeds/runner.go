package seeds

import (
	"context"
	"embed"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	trattamentoModel "fisiocatania_backend/internals/features/catalog/trattamenti/model"
)

//go:embed data/*.json
var dataFS embed.FS

type distrettoSeed struct {
	Nome string   `json:"nome"`
	PosX *float64 `json:"pos_x"`
	PosY *float64 `json:"pos_y"`
}

type trattamentoSeed struct {
	Nome string `json:"nome"`
}

// Result counts rows actually inserted; existing names are skipped.
type Result struct {
	Distretti   int64
	Trattamenti int64
}

// RunAllSeeds inserts the catalog. It can run any number of times.
func RunAllSeeds(ctx context.Context, db *gorm.DB) (Result, error) {
	var res Result

	var regions []distrettoSeed
	if err := readJSON("data/distretti.json", &regions); err != nil {
		return res, err
	}
	rows := make([]distrettoModel.DistrettoModel, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, distrettoModel.DistrettoModel{Nome: r.Nome, PosX: r.PosX, PosY: r.PosY})
	}
	tx := db.WithContext(ctx).Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "nome"}}, DoNothing: true}).Create(&rows)
	if tx.Error != nil {
		return res, fmt.Errorf("seed distretti: %w", tx.Error)
	}
	res.Distretti = tx.RowsAffected

	var treatments []trattamentoSeed
	if err := readJSON("data/trattamenti.json", &treatments); err != nil {
		return res, err
	}
	trows := make([]trattamentoModel.TrattamentoModel, 0, len(treatments))
	for _, t := range treatments {
		trows = append(trows, trattamentoModel.TrattamentoModel{Nome: t.Nome})
	}
	tx = db.WithContext(ctx).Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "nome"}}, DoNothing: true}).Create(&trows)
	if tx.Error != nil {
		return res, fmt.Errorf("seed trattamenti: %w", tx.Error)
	}
	res.Trattamenti = tx.RowsAffected

	log.Info().Int64("distretti", res.Distretti).Int64("trattamenti", res.Trattamenti).Msg("seeds applied")
	return res, nil
}

func readJSON(name string, v any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := sonic.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
