package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"surveyor/internal/survey/models"
	"surveyor/internal/survey/service"
	dErrors "surveyor/pkg/domain-errors"
	"surveyor/pkg/platform/middleware/auth"
	"surveyor/pkg/platform/middleware/metadata"
	"surveyor/pkg/requestcontext"
)

// ResponseService is the resume workflow surface the handler depends on.
type ResponseService interface {
	CreatePartial(ctx context.Context, data map[string]any) (service.CreateResult, error)
	LoadByToken(ctx context.Context, token string) (*service.ResponseView, error)
	UpsertPartial(ctx context.Context, token string, patch map[string]any) (bool, error)
	SubmitByToken(ctx context.Context, token string) (string, error)
	ListAll(ctx context.Context) ([]models.ResponseListing, error)
}

// MailService is the resume-email surface the handler depends on.
type MailService interface {
	QueueResumeEmail(ctx context.Context, to, token string) (string, error)
	ListQueuedEmails(ctx context.Context) ([]models.QueuedEmail, error)
}

// Handler exposes the resume workflow over HTTP. Payloads arrive already
// validated by the form collaborator; the handler only rejects bodies that
// are not JSON at all.
type Handler struct {
	logger    *slog.Logger
	responses ResponseService
	mail      MailService
	validator auth.Validator // nil disables bearer identification
}

func New(responses ResponseService, mail MailService, logger *slog.Logger, validator auth.Validator) *Handler {
	return &Handler{
		logger:    logger,
		responses: responses,
		mail:      mail,
		validator: validator,
	}
}

// Register mounts the survey routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(metadata.Collect())
	if h.validator != nil {
		api.Use(auth.Optional(h.validator, h.logger))
	}

	api.Post("/survey/responses", h.handleCreatePartial)
	api.Get("/survey/responses", h.handleListResponses)
	api.Get("/survey/responses/{token}", h.handleLoadByToken)
	api.Patch("/survey/responses/{token}", h.handleUpsertPartial)
	api.Post("/survey/responses/{token}/submit", h.handleSubmit)
	api.Post("/emails", h.handleQueueEmail)
	api.Get("/emails", h.handleListEmails)

	r.Mount("/api", api)
}

func (h *Handler) handleCreatePartial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.logger.WarnContext(ctx, "invalid create payload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.responses.CreatePartial(ctx, data)
	if err != nil {
		h.logger.ErrorContext(ctx, "create partial failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) handleLoadByToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	view, err := h.responses.LoadByToken(ctx, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleUpsertPartial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	ok, err := h.responses.UpsertPartial(ctx, token, patch)
	if err != nil {
		h.logger.ErrorContext(ctx, "upsert partial failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeNotFound, "resume token not recognized"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	id, err := h.responses.SubmitByToken(ctx, token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) handleListResponses(w http.ResponseWriter, r *http.Request) {
	listings, err := h.responses.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if listings == nil {
		listings = []models.ResponseListing{}
	}
	writeJSON(w, http.StatusOK, listings)
}

type queueEmailRequest struct {
	To    string `json:"to"`
	Token string `json:"token"`
}

func (h *Handler) handleQueueEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req queueEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.To == "" || req.Token == "" {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "to and token are required"))
		return
	}

	id, err := h.mail.QueueResumeEmail(ctx, req.To, req.Token)
	if err != nil {
		h.logger.ErrorContext(ctx, "queue resume email failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

func (h *Handler) handleListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.mail.ListQueuedEmails(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if emails == nil {
		emails = []models.QueuedEmail{}
	}
	writeJSON(w, http.StatusOK, emails)
}
