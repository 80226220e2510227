package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"smilescript/backend/internal/handler"
	"smilescript/backend/internal/model"
	"smilescript/backend/internal/repository"
	"smilescript/backend/internal/service"
)

type commLogServiceStub struct {
	submitErr error
	rerunErr  error
	log       model.CommLog
	logs      []model.CommLog
	lastOrder repository.ListOrder
}

func (s *commLogServiceStub) Submit(ctx context.Context, transcript string) (model.CommLog, error) {
	if s.submitErr != nil {
		return model.CommLog{}, s.submitErr
	}
	return s.log, nil
}

func (s *commLogServiceStub) Rerun(ctx context.Context, id int64) (model.CommLog, error) {
	if s.rerunErr != nil {
		return model.CommLog{}, s.rerunErr
	}
	return s.log, nil
}

func (s *commLogServiceStub) RerunAll(ctx context.Context) (service.RerunAllResult, error) {
	return service.RerunAllResult{Processed: len(s.logs)}, nil
}

func (s *commLogServiceStub) Get(ctx context.Context, id int64) (model.CommLog, error) {
	if s.rerunErr != nil {
		return model.CommLog{}, s.rerunErr
	}
	return s.log, nil
}

func (s *commLogServiceStub) List(ctx context.Context, order repository.ListOrder) ([]model.CommLog, error) {
	s.lastOrder = order
	return s.logs, nil
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCommLogHandler_Submit(t *testing.T) {
	stub := &commLogServiceStub{log: model.CommLog{
		ID:            7,
		Transcript:    "transcript",
		Summary:       "summary",
		SummarySource: "fallback",
	}}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/logs", `{"transcript":"transcript"}`)
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "7", resp["id"], "snowflake ids are serialized as strings")
	require.Equal(t, "summary", resp["summary"])
	require.Equal(t, "fallback", resp["summarySource"])
}

func TestCommLogHandler_Submit_Invalid(t *testing.T) {
	stub := &commLogServiceStub{submitErr: service.ErrInvalid}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/logs", `{"transcript":"   "}`)
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommLogHandler_Rerun_NotFound(t *testing.T) {
	stub := &commLogServiceStub{rerunErr: service.ErrNotFound}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/logs/42/rerun", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Rerun(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommLogHandler_Rerun_InvalidID(t *testing.T) {
	h := handler.NewCommLogHandler(&commLogServiceStub{})

	c, rec := newTestContext(http.MethodPost, "/api/logs/abc/rerun", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Rerun(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommLogHandler_List(t *testing.T) {
	stub := &commLogServiceStub{logs: []model.CommLog{
		{ID: 1, Transcript: "a", Summary: "sa"},
		{ID: 2, Transcript: "b", Summary: "sb"},
	}}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/logs", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, repository.OrderCreatedAsc, stub.lastOrder)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}

func TestCommLogHandler_List_DescOrder(t *testing.T) {
	stub := &commLogServiceStub{}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/logs?order=desc", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, repository.OrderCreatedDesc, stub.lastOrder)
}

func TestCommLogHandler_RerunAll(t *testing.T) {
	stub := &commLogServiceStub{logs: make([]model.CommLog, 3)}
	h := handler.NewCommLogHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/logs/rerun", "")
	require.NoError(t, h.RerunAll(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp["processed"])
	require.Equal(t, 0, resp["failed"])
}
