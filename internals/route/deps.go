package routes

import (
	"time"

	"gorm.io/gorm"

	"fisiocatania_backend/internals/configs"
	authRepo "fisiocatania_backend/internals/features/operators/auth/repository"
	operatoreService "fisiocatania_backend/internals/features/operators/operatori/service"
	"fisiocatania_backend/internals/features/reports/export/dossier"
	"fisiocatania_backend/internals/features/reports/export/sheet"
	reportRepo "fisiocatania_backend/internals/features/reports/reportistica/repository"
	reportService "fisiocatania_backend/internals/features/reports/reportistica/service"
	"fisiocatania_backend/internals/helpers/media"
)

// Deps is everything the routes need, built once by the serve command.
type Deps struct {
	Cfg       *configs.Config
	DB        *gorm.DB
	Media     media.Store
	Location  *time.Location
	Grid      *reportService.GridService
	Sheet     *sheet.Exporter
	Dossier   *dossier.Exporter
	Operators *operatoreService.OperatoreService
	Sessions  *authRepo.SessionStore
	StartedAt time.Time
}

// NewDeps wires the services on top of an open DB and media store.
func NewDeps(cfg *configs.Config, db *gorm.DB, store media.Store) *Deps {
	grid := reportRepo.NewGormGridStore(db)
	return &Deps{
		Cfg:       cfg,
		DB:        db,
		Media:     store,
		Location:  cfg.Location(),
		Grid:      reportService.NewGridService(grid),
		Sheet:     sheet.NewExporter(grid),
		Dossier:   dossier.NewExporter(dossier.NewGormReader(db), cfg.ClinicName, cfg.PDFLogoPath),
		Operators: operatoreService.NewOperatoreService(db, cfg.OperatorDeletePolicy),
		Sessions:  authRepo.NewSessionStore(db, cfg.JWTSecret),
		StartedAt: time.Now(),
	}
}
