package helper

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

/* =======================================================
   Error taxonomy
   ======================================================= */

// ValidationError: malformed input caught before any storage call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// StorageError: the persistence layer failed. Never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// ExternalServiceError: the media host (or another remote) failed.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Service + ": " + e.Op + ": " + e.Err.Error()
}
func (e *ExternalServiceError) Unwrap() error { return e.Err }

// RenderError: a document could not be produced at all.
type RenderError struct {
	Doc string
	Err error
}

func (e *RenderError) Error() string { return "render " + e.Doc + ": " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

/* =======================================================
   PG error mapping (pgx / libpq)
   ======================================================= */

func MapPGError(err error) (int, string) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgCodeToStatus(pgxErr.Code, pgxErr.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgCodeToStatus(string(pqErr.Code), pqErr.Message)
	}
	return http.StatusInternalServerError, "Storage error"
}

func pgCodeToStatus(code, msg string) (int, string) {
	switch code {
	case "23503":
		return http.StatusBadRequest, "Referenced record not found (FK violation)."
	case "23505":
		return http.StatusConflict, "Duplicate data (unique violation)."
	case "22007", "22008":
		return http.StatusBadRequest, "Invalid date value."
	default:
		return http.StatusInternalServerError, "Storage error"
	}
}

// IsUniqueViolation reports a 23505 from either driver.
func IsUniqueViolation(err error) bool {
	status, _ := MapPGError(err)
	return status == http.StatusConflict
}

/* =======================================================
   HTTP writer
   ======================================================= */

// WriteError renders any error of the taxonomy with the standard envelope.
func WriteError(c *fiber.Ctx, err error) error {
	var (
		ve *ValidationError
		se *StorageError
		xe *ExternalServiceError
		re *RenderError
		fe *fiber.Error
		vs validator.ValidationErrors
	)
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ve):
		field := ve.Field
		if field == "" {
			field = "request"
		}
		return JsonValidationError(c, ve.Error(), map[string][]string{field: {ve.Message}})
	case errors.As(err, &vs):
		return JsonValidationError(c, "Dati non validi", FieldErrors(vs))
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonError(c, fiber.StatusNotFound, "Data not found")
	case errors.As(err, &se):
		status, msg := MapPGError(se.Err)
		if status >= 500 {
			log.Error().Err(se.Err).Str("op", se.Op).Str("reqid", RequestID(c)).Msg("storage failure")
		}
		return JsonError(c, status, msg)
	case errors.As(err, &xe):
		log.Error().Err(xe.Err).Str("service", xe.Service).Str("op", xe.Op).Str("reqid", RequestID(c)).Msg("external service failure")
		return JsonError(c, fiber.StatusBadGateway, "Media service unavailable, nothing was deleted")
	case errors.As(err, &re):
		log.Error().Err(re.Err).Str("doc", re.Doc).Str("reqid", RequestID(c)).Msg("render failure")
		return JsonError(c, fiber.StatusInternalServerError, "Document could not be generated")
	case errors.As(err, &fe):
		return JsonError(c, fe.Code, fe.Message)
	default:
		log.Error().Err(err).Str("reqid", RequestID(c)).Msg("unhandled error")
		return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

// FiberErrorHandler is installed as fiber.Config.ErrorHandler.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return WriteError(c, err)
}

// RequestID reads the id set by the request middleware.
func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("reqid").(string); ok {
		return v
	}
	return ""
}
