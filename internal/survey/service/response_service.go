package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	surveymetrics "surveyor/internal/survey/metrics"
	"surveyor/internal/survey/models"
	"surveyor/internal/survey/store/definition"
	"surveyor/internal/survey/store/response"
	dErrors "surveyor/pkg/domain-errors"
	"surveyor/pkg/platform/audit"
	"surveyor/pkg/platform/sentinel"
	"surveyor/pkg/requestcontext"
)

var tracer trace.Tracer = otel.Tracer("surveyor/internal/survey/service")

// ResponseService owns the response lifecycle. The fallback store is total:
// every operation has an equivalent implementation there, differing only in
// durability, audit, and the survey foreign key.
type ResponseService struct {
	durable     response.Store // nil when no durable backend is configured
	fallback    response.Store
	definitions definition.Store
	publisher   *audit.Publisher
	metrics     *surveymetrics.Metrics
	logger      *slog.Logger
	tokens      func() string
	now         func() time.Time
	spec        SurveySpec
}

// NewResponseService constructs the service around its fallback store. The
// durable path is armed via WithDurableStore and may be absent.
func NewResponseService(fallback response.Store, opts ...Option) *ResponseService {
	cfg := newConfig(opts)
	return &ResponseService{
		durable:     cfg.durable,
		fallback:    fallback,
		definitions: cfg.definitions,
		publisher:   cfg.publisher,
		metrics:     cfg.metrics,
		logger:      cfg.logger,
		tokens:      cfg.tokens,
		now:         cfg.now,
		spec:        cfg.spec,
	}
}

// CreatePartial starts a resumable response from an already-validated payload
// and returns the token that is its only external handle. The operation only
// errors when both the durable and the fallback path fail, which callers must
// treat as fatal.
func (s *ResponseService) CreatePartial(ctx context.Context, data map[string]any) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "ResponseService.CreatePartial")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("create_partial", start) }()

	now := s.now()
	resp := &models.Response{
		ID:          uuid.NewString(),
		OwnerUserID: requestcontext.UserID(ctx),
		Token:       s.tokens(),
		Status:      models.StatusPartial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if s.durable != nil {
		resp.SurveyID = s.ensureSurvey(ctx)
		if err := s.durable.Create(ctx, resp, data); err == nil {
			s.emit(ctx, audit.ActionCreatePartial, resp.ID, data)
			s.metrics.IncResponsesCreated()
			return CreateResult{ID: resp.ID, Token: resp.Token}, nil
		} else {
			s.fellBack(ctx, "create_partial", err)
		}
	}

	resp.SurveyID = models.FallbackSurveyID
	if err := s.fallback.Create(ctx, resp, data); err != nil {
		return CreateResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "create partial response")
	}
	s.metrics.IncResponsesCreated()
	return CreateResult{ID: resp.ID, Token: resp.Token}, nil
}

// LoadByToken resolves a resume token into the response's status and current
// answers. An unknown token is CodeNotFound, a normal negative result.
func (s *ResponseService) LoadByToken(ctx context.Context, token string) (*ResponseView, error) {
	ctx, span := tracer.Start(ctx, "ResponseService.LoadByToken")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("load_by_token", start) }()

	if s.durable != nil {
		view, err := loadFrom(ctx, s.durable, token)
		if err == nil {
			return view, nil
		}
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "resume token not recognized")
		}
		s.fellBack(ctx, "load_by_token", err)
	}

	view, err := loadFrom(ctx, s.fallback, token)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "resume token not recognized")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load response")
	}
	return view, nil
}

// UpsertPartial applies a key-wise patch to the response behind the token.
// Keys in the patch overwrite in full; other keys stay untouched. Returns
// false when the token is unknown — there is no implicit creation.
func (s *ResponseService) UpsertPartial(ctx context.Context, token string, patch map[string]any) (bool, error) {
	ctx, span := tracer.Start(ctx, "ResponseService.UpsertPartial")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("update_partial", start) }()

	if s.durable != nil {
		resp, err := s.durable.FindByToken(ctx, token)
		switch {
		case err == nil:
			s.emit(ctx, audit.ActionUpdatePartial, resp.ID, patch)
			if upsertErr := s.durable.UpsertAnswers(ctx, resp.ID, patch); upsertErr == nil {
				return true, nil
			} else {
				s.fellBack(ctx, "update_partial", upsertErr)
			}
		case errors.Is(err, sentinel.ErrNotFound):
			return false, nil
		default:
			s.fellBack(ctx, "update_partial", err)
		}
	}

	resp, err := s.fallback.FindByToken(ctx, token)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "update partial response")
	}
	if err := s.fallback.UpsertAnswers(ctx, resp.ID, patch); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "update partial response")
	}
	return true, nil
}

// SubmitByToken finalizes the response behind the token and returns its
// internal ID. Submitting an already-submitted response keeps it submitted
// and still appends an audit entry; submitting an empty response is allowed —
// answer policy belongs to the caller.
func (s *ResponseService) SubmitByToken(ctx context.Context, token string) (string, error) {
	ctx, span := tracer.Start(ctx, "ResponseService.SubmitByToken")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("submit", start) }()

	now := s.now()
	if s.durable != nil {
		resp, err := s.durable.FindByToken(ctx, token)
		switch {
		case err == nil:
			if submitErr := s.durable.Submit(ctx, resp.ID, now); submitErr == nil {
				s.emit(ctx, audit.ActionSubmit, resp.ID, nil)
				s.metrics.IncResponsesSubmitted()
				return resp.ID, nil
			} else {
				s.fellBack(ctx, "submit", submitErr)
			}
		case errors.Is(err, sentinel.ErrNotFound):
			return "", dErrors.New(dErrors.CodeNotFound, "no in-progress response for token")
		default:
			s.fellBack(ctx, "submit", err)
		}
	}

	resp, err := s.fallback.FindByToken(ctx, token)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", dErrors.New(dErrors.CodeNotFound, "no in-progress response for token")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "submit response")
	}
	if err := s.fallback.Submit(ctx, resp.ID, now); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "submit response")
	}
	s.metrics.IncResponsesSubmitted()
	return resp.ID, nil
}

// ListAll returns every response with answers flattened, in backend iteration
// order. No pagination; callers get the full set.
func (s *ResponseService) ListAll(ctx context.Context) ([]models.ResponseListing, error) {
	ctx, span := tracer.Start(ctx, "ResponseService.ListAll")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveOperation("list_all", start) }()

	if s.durable != nil {
		listings, err := s.durable.ListAll(ctx)
		if err == nil {
			return listings, nil
		}
		s.fellBack(ctx, "list_all", err)
	}

	listings, err := s.fallback.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list responses")
	}
	return listings, nil
}

// ensureSurvey resolves the definition ID for this process's survey spec,
// creating the definition on first use. Registry failure degrades to the
// sentinel ID so downstream operations never block on it.
func (s *ResponseService) ensureSurvey(ctx context.Context) string {
	if s.definitions == nil {
		return models.FallbackSurveyID
	}
	id, err := s.definitions.Ensure(ctx, models.SurveyDefinition{
		ID:        uuid.NewString(),
		SpecID:    s.spec.ID,
		Version:   s.spec.Version,
		Meta:      s.spec.Meta,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "survey registry unavailable, using sentinel survey id", "error", err)
		return models.FallbackSurveyID
	}
	return id
}

func loadFrom(ctx context.Context, store response.Store, token string) (*ResponseView, error) {
	resp, err := store.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	data, err := store.Answers(ctx, resp.ID)
	if err != nil {
		return nil, err
	}
	return &ResponseView{ID: resp.ID, Status: resp.Status, Data: data}, nil
}

func (s *ResponseService) emit(ctx context.Context, action audit.Action, entityID string, diff map[string]any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Emit(ctx, audit.Event{
		Action:   action,
		Entity:   audit.EntitySurveyResponse,
		EntityID: entityID,
		Diff:     diff,
	})
}

// fellBack records that the durable path failed and the fallback store is
// about to serve the operation. The caller never learns the difference.
func (s *ResponseService) fellBack(ctx context.Context, operation string, err error) {
	s.metrics.IncFallback(operation)
	s.logger.WarnContext(ctx, "durable store unavailable, serving from fallback",
		"operation", operation,
		"error", err,
	)
}
