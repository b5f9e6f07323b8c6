package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	identity "textbook-logistics/internal/http/middleware"
	"textbook-logistics/internal/logx"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil && logger != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	if logger != nil {
		logger.Info("http error",
			logx.String("req_id", reqID(r.Context())),
			logx.Int("status", status),
			logx.String("msg", msg),
		)
	}
	writeJSON(logger, w, r, status, errResponse{Error: msg})
}

// writeServiceError maps use case errors onto HTTP statuses.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.Invalid):
		writeError(logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.Forbidden):
		writeError(logger, w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.NotFound):
		writeError(logger, w, r, http.StatusNotFound, "delivery not found")
	case apperr.IsRejected(err), errors.Is(err, apperr.Conflict):
		writeError(logger, w, r, http.StatusConflict, err.Error())
	case apperr.IsRouting(err):
		writeError(logger, w, r, http.StatusUnprocessableEntity, err.Error())
	case apperr.IsPaymentInitiation(err):
		writeError(logger, w, r, http.StatusBadGateway, "payment could not be initiated, try again")
	default:
		if logger != nil {
			logger.Error("request failed",
				logx.String("req_id", reqID(r.Context())),
				logx.String("path", r.URL.Path),
				logx.Err(err),
			)
		}
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	if err := validatorInstance().Struct(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return "invalid field " + ve[0].Field() + ": " + ve[0].Tag()
	}
	return "invalid input"
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// actorOr401 returns the authenticated user or writes 401.
func actorOr401(logger logx.Logger, w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	uid, ok := identity.UserFrom(r.Context())
	if !ok {
		writeError(logger, w, r, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return uid, true
}
