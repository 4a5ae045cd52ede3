package database

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	anagraficaModel "fisiocatania_backend/internals/features/athletes/anagrafica/model"
	distrettoModel "fisiocatania_backend/internals/features/catalog/distretti/model"
	trattamentoModel "fisiocatania_backend/internals/features/catalog/trattamenti/model"
	authModel "fisiocatania_backend/internals/features/operators/auth/model"
	operatoreModel "fisiocatania_backend/internals/features/operators/operatori/model"
	reportModel "fisiocatania_backend/internals/features/reports/reportistica/model"
	allegatoModel "fisiocatania_backend/internals/features/therapies/allegati/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
)

// Models in dependency order.
func Models() []any {
	return []any{
		&anagraficaModel.AnagraficaModel{},
		&distrettoModel.DistrettoModel{},
		&trattamentoModel.TrattamentoModel{},
		&operatoreModel.OperatoreModel{},
		&authModel.TokenBlacklistModel{},
		&terapiaModel.TerapiaModel{},
		&allegatoModel.AllegatoModel{},
		&reportModel.ReportSiglaModel{},
	}
}

// Migrate creates or updates the schema, then adds what AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	quoted := make([]string, 0, len(reportModel.Sigle))
	for _, s := range reportModel.Sigle {
		quoted = append(quoted, "'"+strings.ReplaceAll(s, "'", "''")+"'")
	}
	stmts := []string{
		`ALTER TABLE report_sigle DROP CONSTRAINT IF EXISTS ck_report_sigle_sigla`,
		`ALTER TABLE report_sigle ADD CONSTRAINT ck_report_sigle_sigla CHECK (sigla IN (` + strings.Join(quoted, ", ") + `))`,
		`ALTER TABLE terapie DROP CONSTRAINT IF EXISTS ck_terapie_sigla`,
		`ALTER TABLE terapie ADD CONSTRAINT ck_terapie_sigla CHECK (sigla IS NULL OR sigla IN (` + strings.Join(quoted, ", ") + `))`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("migrate constraint: %w", err)
		}
	}
	log.Info().Int("tables", len(Models())).Msg("schema migrated")
	return nil
}
