package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	allegatoModel "fisiocatania_backend/internals/features/therapies/allegati/model"
	"fisiocatania_backend/internals/features/therapies/terapie/dto"
	"fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
	helperAuth "fisiocatania_backend/internals/helpers/auth"
	"fisiocatania_backend/internals/helpers/media"
)

var validate = helper.NewValidator()

type TerapiaController struct {
	DB    *gorm.DB
	Media media.Store
}

func NewTerapiaController(db *gorm.DB, store media.Store) *TerapiaController {
	return &TerapiaController{DB: db, Media: store}
}

const rowSelect = `
	terapie.id, terapie.data, terapie.anagrafica_id, terapie.distretto_id, terapie.trattamento_id,
	terapie.operatore_id, terapie.note, terapie.sigla, terapie.created_at,
	anagrafica.cognome || ' ' || anagrafica.nome AS atleta,
	distretti.nome AS distretto,
	trattamenti.nome AS trattamento,
	NULLIF(TRIM(COALESCE(operatori.nome, '') || ' ' || COALESCE(operatori.cognome, '')), '') AS operatore`

var sortColumns = map[string]string{
	"data":       "terapie.data",
	"created_at": "terapie.created_at",
	"id":         "terapie.id",
}

func (h *TerapiaController) joined(c *fiber.Ctx) *gorm.DB {
	return h.DB.WithContext(c.UserContext()).
		Table("terapie").
		Joins("LEFT JOIN anagrafica ON anagrafica.id = terapie.anagrafica_id").
		Joins("LEFT JOIN distretti ON distretti.id = terapie.distretto_id").
		Joins("LEFT JOIN trattamenti ON trattamenti.id = terapie.trattamento_id").
		Joins("LEFT JOIN operatori ON operatori.id = terapie.operatore_id")
}

// =========================================================
// GET /api/terapie?anagrafica_id=&from=&to=&page=&per_page=
// =========================================================
func (h *TerapiaController) List(c *fiber.Ctx) error {
	f, err := dto.ParseListFilter(c.Query("anagrafica_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	p := helper.ParseFiber(c, "data", "desc", helper.ListAllOpts)

	tx := h.joined(c)
	if f.AnagraficaID != 0 {
		tx = tx.Where("terapie.anagrafica_id = ?", f.AnagraficaID)
	}
	if f.From != nil {
		tx = tx.Where("terapie.data >= ?", helper.FormatDate(*f.From))
	}
	if f.To != nil {
		tx = tx.Where("terapie.data <= ?", helper.FormatDate(*f.To))
	}
	tx = tx.Session(&gorm.Session{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("count sessions", err))
	}
	var rows []dto.TerapiaRow
	if err := tx.Select(rowSelect).
		Order(p.OrderClause(sortColumns, "data")).Order("terapie.id DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list sessions", err))
	}
	return helper.JsonList(c, "ok", dto.ToTerapiaResponses(rows), helper.BuildMeta(total, p))
}

// GET /api/terapie/:id
func (h *TerapiaController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return helper.WriteError(c, err)
	}
	var rows []dto.TerapiaRow
	if err := h.joined(c).Select(rowSelect).Where("terapie.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("load session", err))
	}
	if len(rows) == 0 {
		return helper.WriteError(c, gorm.ErrRecordNotFound)
	}
	return helper.JsonOK(c, "ok", dto.ToTerapiaResponses(rows)[0])
}

// POST /api/terapie
// The operator is the logged-in one; dangling references surface as FK errors (400).
func (h *TerapiaController) Create(c *fiber.Ctx) error {
	var req dto.CreateTerapiaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	opID, _ := helperAuth.GetOperatorID(c)
	m, err := req.ToModel(opID)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Omit("Anagrafica", "Distretto", "Trattamento", "Operatore").Create(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("create session", err))
	}
	return helper.JsonCreated(c, "Terapia registrata", dto.ToTerapiaResponse(m))
}

// PUT /api/terapie/:id
func (h *TerapiaController) Update(c *fiber.Ctx) error {
	var req dto.UpdateTerapiaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload non valido")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.WriteError(c, err)
	}
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	if err := req.ApplyToModel(m); err != nil {
		return helper.WriteError(c, err)
	}
	if opID, err := helperAuth.GetOperatorID(c); err == nil {
		m.OperatoreID = &opID
	}
	if err := h.DB.WithContext(c.UserContext()).Omit("Anagrafica", "Distretto", "Trattamento", "Operatore").Save(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("update session", err))
	}
	return helper.JsonUpdated(c, "Terapia aggiornata", dto.ToTerapiaResponse(m))
}

// DELETE /api/terapie/:id
// Attachment objects are removed from the media host first; the rows cascade.
func (h *TerapiaController) Delete(c *fiber.Ctx) error {
	m, err := h.find(c)
	if err != nil {
		return helper.WriteError(c, err)
	}
	var keys []string
	if err := h.DB.WithContext(c.UserContext()).Model(&allegatoModel.AllegatoModel{}).
		Where("terapia_id = ?", m.ID).Pluck("object_key", &keys).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("list attachments", err))
	}
	if err := media.DeleteAll(c.UserContext(), h.Media, keys...); err != nil {
		return helper.WriteError(c, err)
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(m).Error; err != nil {
		return helper.WriteError(c, helper.NewStorageError("delete session", err))
	}
	return helper.JsonDeleted(c, "Terapia eliminata", fiber.Map{"id": m.ID})
}

func (h *TerapiaController) find(c *fiber.Ctx) (*model.TerapiaModel, error) {
	id, err := helper.ParseID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	var m model.TerapiaModel
	if err := h.DB.WithContext(c.UserContext()).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load session", err)
	}
	return &m, nil
}
