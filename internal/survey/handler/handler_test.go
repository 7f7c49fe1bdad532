package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"surveyor/internal/survey/handler/mocks"
	"surveyor/internal/survey/models"
	"surveyor/internal/survey/service"
	dErrors "surveyor/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/survey-mocks.go -package=mocks ResponseService,MailService
type SurveyHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SurveyHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestSurveyHandlerSuite(t *testing.T) {
	suite.Run(t, new(SurveyHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockResponseService, *mocks.MockMailService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	responses := mocks.NewMockResponseService(ctrl)
	mail := mocks.NewMockMailService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := New(responses, mail, logger, nil)
	r := chi.NewRouter()
	handler.Register(r)
	return r, responses, mail
}

func (s *SurveyHandlerSuite) TestCreatePartial() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().CreatePartial(gomock.Any(), map[string]any{"role": "Engineer"}).
		Return(service.CreateResult{ID: "resp_1", Token: "tok_abc_1"}, nil)

	body := bytes.NewReader([]byte(`{"role":"Engineer"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/survey/responses", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "resp_1", resp["id"])
	assert.Equal(s.T(), "tok_abc_1", resp["token"])
}

func (s *SurveyHandlerSuite) TestCreatePartial_InvalidBody() {
	r, _, _ := newTestRouter(s.T())

	req := httptest.NewRequest(http.MethodPost, "/api/survey/responses", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *SurveyHandlerSuite) TestLoadByToken() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().LoadByToken(gomock.Any(), "tok_abc_1").
		Return(&service.ResponseView{
			ID:     "resp_1",
			Status: models.StatusPartial,
			Data:   map[string]any{"role": "Engineer"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/survey/responses/tok_abc_1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "resp_1", resp["id"])
	assert.Equal(s.T(), "partial", resp["status"])
	data := resp["data"].(map[string]any)
	assert.Equal(s.T(), "Engineer", data["role"])
}

func (s *SurveyHandlerSuite) TestLoadByToken_NotFound() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().LoadByToken(gomock.Any(), "tok_missing").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "resume token not recognized"))

	req := httptest.NewRequest(http.MethodGet, "/api/survey/responses/tok_missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "resume token not recognized", resp["error"])
}

func (s *SurveyHandlerSuite) TestUpsertPartial() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().UpsertPartial(gomock.Any(), "tok_abc_1", map[string]any{"team": "Infra"}).
		Return(true, nil)

	body := bytes.NewReader([]byte(`{"team":"Infra"}`))
	req := httptest.NewRequest(http.MethodPatch, "/api/survey/responses/tok_abc_1", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]bool
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(s.T(), resp["ok"])
}

func (s *SurveyHandlerSuite) TestUpsertPartial_UnknownToken() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().UpsertPartial(gomock.Any(), "tok_missing", gomock.Any()).
		Return(false, nil)

	body := bytes.NewReader([]byte(`{"team":"Infra"}`))
	req := httptest.NewRequest(http.MethodPatch, "/api/survey/responses/tok_missing", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *SurveyHandlerSuite) TestSubmit() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().SubmitByToken(gomock.Any(), "tok_abc_1").Return("resp_1", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/survey/responses/tok_abc_1/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "resp_1", resp["id"])
}

func (s *SurveyHandlerSuite) TestSubmit_NotFound() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().SubmitByToken(gomock.Any(), "tok_missing").
		Return("", dErrors.New(dErrors.CodeNotFound, "no in-progress response for token"))

	req := httptest.NewRequest(http.MethodPost, "/api/survey/responses/tok_missing/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "no in-progress response for token", resp["error"])
}

func (s *SurveyHandlerSuite) TestListResponses_EmptyIsArray() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/survey/responses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "[]\n", w.Body.String())
}

func (s *SurveyHandlerSuite) TestListResponses_InternalError() {
	r, responses, _ := newTestRouter(s.T())
	responses.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("boom"))

	req := httptest.NewRequest(http.MethodGet, "/api/survey/responses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusInternalServerError, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "internal error", resp["error"])
}

func (s *SurveyHandlerSuite) TestQueueEmail() {
	r, _, mail := newTestRouter(s.T())
	mail.EXPECT().QueueResumeEmail(gomock.Any(), "ada@example.com", "tok_abc_1").
		Return("mail_1", nil)

	body := bytes.NewReader([]byte(`{"to":"ada@example.com","token":"tok_abc_1"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/emails", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusAccepted, w.Code)
	var resp map[string]string
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "mail_1", resp["id"])
}

func (s *SurveyHandlerSuite) TestQueueEmail_MissingFields() {
	r, _, _ := newTestRouter(s.T())

	body := bytes.NewReader([]byte(`{"to":"ada@example.com"}`))
	req := httptest.NewRequest(http.MethodPost, "/api/emails", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *SurveyHandlerSuite) TestListEmails() {
	r, _, mail := newTestRouter(s.T())
	mail.EXPECT().ListQueuedEmails(gomock.Any()).Return([]models.QueuedEmail{
		{ID: "mail_1", To: "ada@example.com", Subject: "Your survey resume link", Token: "tok_abc_1"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/emails", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(s.T(), resp, 1)
	assert.Equal(s.T(), "mail_1", resp[0]["id"])
	assert.Equal(s.T(), "Your survey resume link", resp[0]["subject"])
}
