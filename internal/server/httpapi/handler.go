package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tpforum/internal/common"
	"github.com/dmitrijs2005/tpforum/internal/logging"
	"github.com/dmitrijs2005/tpforum/internal/server/models"
	"github.com/dmitrijs2005/tpforum/internal/server/services"
)

// maxBodyBytes caps the size of an auth request body.
const maxBodyBytes = 1 << 20

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, login, password string) (*services.AuthResult, error)
	Session(ctx context.Context, token string) (*models.User, error)
}

type Handler struct {
	users  UserService
	logger logging.Logger
}

func NewHandler(us UserService, l logging.Logger) *Handler {
	return &Handler{users: us, logger: l}
}

// auth dispatches on the "action" field. A missing action means register.
func (h *Handler) auth(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, services.MsgInvalidRequest)
		return
	}

	action := strings.TrimSpace(req.Action)
	if action == "" {
		action = actionRegister
	}

	var (
		res    *services.AuthResult
		err    error
		status int
	)
	switch action {
	case actionRegister:
		res, err = h.users.Register(r.Context(), req.Username, req.Email, req.Password)
		status = http.StatusCreated
	case actionLogin:
		res, err = h.users.Login(r.Context(), req.Username, req.Password)
		status = http.StatusOK
	default:
		h.writeError(w, http.StatusBadRequest, services.MsgUnknownAction)
		return
	}

	if err != nil {
		h.handleError(r.Context(), w, action, err)
		return
	}

	h.writeJSON(w, status, authResponse{
		User:         toUserDTO(res.User),
		SessionToken: res.SessionToken,
		Message:      res.Message,
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.Header.Get(common.SessionTokenHeaderName))
	if token == "" {
		h.writeError(w, http.StatusUnauthorized, services.MsgSessionRequired)
		return
	}

	user, err := h.users.Session(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			h.writeError(w, http.StatusUnauthorized, services.MsgSessionRequired)
			return
		}
		h.logger.Error(r.Context(), "session lookup failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, services.MsgInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, sessionResponse{User: toUserDTO(user)})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusMethodNotAllowed, services.MsgMethodNotAllowed)
}

func (h *Handler) notFound(w http.ResponseWriter, _ *http.Request) {
	h.writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, action string, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorAlreadyExists):
		h.writeError(w, http.StatusConflict, services.MsgUserExists)
	case errors.Is(err, common.ErrorUnauthorized):
		h.writeError(w, http.StatusUnauthorized, services.MsgInvalidCredentials)
	default:
		h.logger.Error(ctx, "auth request failed", "action", action, "error", err)
		h.writeError(w, http.StatusInternalServerError, services.MsgInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn(context.Background(), "write response", "error", err)
	}
}
