package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/features/operators/operatori/model"
	terapiaModel "fisiocatania_backend/internals/features/therapies/terapie/model"
	helper "fisiocatania_backend/internals/helpers"
)

// Delete policies for the sessions attributed to a removed operator.
const (
	PolicyCascade = "cascade"
	PolicyDetach  = "detach"
)

var dummyHash = sync.OnceValue(func() []byte {
	b, _ := bcrypt.GenerateFromPassword([]byte("fisiocatania"), bcrypt.DefaultCost)
	return b
})

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfDelete         = errors.New("an operator cannot delete itself")
)

type OperatoreService struct {
	DB           *gorm.DB
	DeletePolicy string
	Cost         int
}

func NewOperatoreService(db *gorm.DB, deletePolicy string) *OperatoreService {
	return &OperatoreService{DB: db, DeletePolicy: deletePolicy, Cost: bcrypt.DefaultCost}
}

func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type CreateInput struct {
	Nome     string
	Cognome  string
	Email    string
	Password string
	IsAdmin  bool
}

// Create stores a new operator with a bcrypt hash. A taken email is a StorageError
// carrying the unique violation.
func (s *OperatoreService) Create(ctx context.Context, in CreateInput) (*model.OperatoreModel, error) {
	if len(in.Password) < 8 {
		return nil, helper.NewValidationError("password", "must be at least 8 characters")
	}
	hash, err := HashPassword(in.Password, s.Cost)
	if err != nil {
		return nil, err
	}
	m := &model.OperatoreModel{
		Nome:     strings.TrimSpace(in.Nome),
		Cognome:  strings.TrimSpace(in.Cognome),
		Email:    NormalizeEmail(in.Email),
		Password: hash,
		IsAdmin:  in.IsAdmin,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, helper.NewStorageError("create operator", err)
	}
	return m, nil
}

// Authenticate returns the operator for a valid email/password pair.
func (s *OperatoreService) Authenticate(ctx context.Context, email, password string) (*model.OperatoreModel, error) {
	var m model.OperatoreModel
	err := s.DB.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// keep timing close to the wrong-password path
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, helper.NewStorageError("load operator", err)
	}
	if !CheckPassword(m.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &m, nil
}

func (s *OperatoreService) Get(ctx context.Context, id uint) (*model.OperatoreModel, error) {
	var m model.OperatoreModel
	if err := s.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, helper.NewStorageError("load operator", err)
	}
	return &m, nil
}

func (s *OperatoreService) List(ctx context.Context) ([]model.OperatoreModel, error) {
	var rows []model.OperatoreModel
	if err := s.DB.WithContext(ctx).Order("cognome ASC, nome ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, helper.NewStorageError("list operators", err)
	}
	return rows, nil
}

// Delete removes an operator. Its sessions are deleted (cascade) or kept
// without attribution (detach), in the same transaction.
func (s *OperatoreService) Delete(ctx context.Context, id, actingID uint) (int64, error) {
	if id == actingID {
		return 0, ErrSelfDelete
	}
	if _, err := s.Get(ctx, id); err != nil {
		return 0, err
	}
	var affected int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		if s.DeletePolicy == PolicyDetach {
			res = tx.Model(&terapiaModel.TerapiaModel{}).Where("operatore_id = ?", id).Update("operatore_id", nil)
		} else {
			res = tx.Where("operatore_id = ?", id).Delete(&terapiaModel.TerapiaModel{})
		}
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return tx.Delete(&model.OperatoreModel{}, id).Error
	})
	if err != nil {
		return 0, helper.NewStorageError("delete operator", err)
	}
	return affected, nil
}

// Counts feeds the dashboard.
type Counts struct {
	Athletes      int64 `json:"athletes"`
	Injured       int64 `json:"injured"`
	SessionsToday int64 `json:"sessions_today"`
}

func (s *OperatoreService) DashboardCounts(ctx context.Context, today string) (Counts, error) {
	var out Counts
	err := s.DB.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM anagrafica) AS athletes,
			(SELECT COUNT(*) FROM anagrafica WHERE infortunato) AS injured,
			(SELECT COUNT(*) FROM terapie WHERE data = CAST(? AS date)) AS sessions_today`, today).
		Scan(&out).Error
	if err != nil {
		return Counts{}, helper.NewStorageError("dashboard counts", err)
	}
	return out, nil
}
