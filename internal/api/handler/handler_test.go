package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/brettwatson77/rabs-poc-sub007/internal/dto"
	"github.com/brettwatson77/rabs-poc-sub007/internal/service"
	"github.com/brettwatson77/rabs-poc-sub007/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock RuleService ──

type mockRuleService struct {
	createResult   *dto.RuleResponse
	createErr      error
	getResult      *dto.RuleResponse
	getErr         error
	listResult     []dto.RuleResponse
	listErr        error
	updateResult   *dto.RuleResponse
	updateErr      error
	replaceResult  *dto.RuleResponse
	replaceErr     error
	finalizeResult *dto.FinalizeRuleResponse
	finalizeErr    error
}

func (m *mockRuleService) Create(_ context.Context, _ *dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockRuleService) GetByID(_ context.Context, _ string) (*dto.RuleResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockRuleService) List(_ context.Context, _ *dto.RuleListRequest) ([]dto.RuleResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockRuleService) UpdatePartial(_ context.Context, _ string, _ *dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockRuleService) ReplaceSlots(_ context.Context, _ string, _ *dto.ReplaceSlotsRequest) (*dto.RuleResponse, error) {
	return m.replaceResult, m.replaceErr
}
func (m *mockRuleService) Finalize(_ context.Context, _ string, _ *dto.FinalizeRuleRequest) (*dto.FinalizeRuleResponse, error) {
	return m.finalizeResult, m.finalizeErr
}

// ── Mock ExceptionService ──

type mockExceptionService struct {
	createResult *dto.CreateExceptionResponse
	createErr    error
	listResult   []dto.ExceptionResponse
	listErr      error
}

func (m *mockExceptionService) Create(_ context.Context, _ *dto.CreateExceptionRequest) (*dto.CreateExceptionResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockExceptionService) ListByRule(_ context.Context, _ string) ([]dto.ExceptionResponse, error) {
	return m.listResult, m.listErr
}

// ── Mock RethreadService ──

type mockRethreadService struct {
	result *dto.RethreadResponse
	err    error
}

func (m *mockRethreadService) Rethread(_ context.Context, _ *dto.RethreadRequest) (*dto.RethreadResponse, error) {
	return m.result, m.err
}

// ── Mock RosterService ──

type mockRosterService struct {
	listResult []dto.InstanceResponse
	listErr    error
	dayResult  *dto.DayCardsResponse
	dayErr     error
}

func (m *mockRosterService) ListInstances(_ context.Context, _ *dto.InstanceListRequest) ([]dto.InstanceResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockRosterService) DayCards(_ context.Context, _ string) (*dto.DayCardsResponse, error) {
	return m.dayResult, m.dayErr
}

// ═══════════════════════════════════════════════════════════
// 测试辅助
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// RuleHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRuleHandler_CreateRule_Success(t *testing.T) {
	mock := &mockRuleService{
		createResult: &dto.RuleResponse{ID: "rule-001", Name: "周一社区中心日", Status: "draft"},
	}
	h := NewRuleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/rules", jsonBody(dto.CreateRuleRequest{
		Name:      "周一社区中心日",
		Weekday:   1,
		CycleWeek: 1,
		StartTime: "09:00",
		EndTime:   "15:00",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rules", h.CreateRule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestRuleHandler_CreateRule_BadJSON(t *testing.T) {
	h := NewRuleHandler(&mockRuleService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/rules", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rules", h.CreateRule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRuleHandler_GetRule_NotFound(t *testing.T) {
	mock := &mockRuleService{getErr: service.ErrRuleNotFound}
	h := NewRuleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/rules/rule-missing", nil)

	r := gin.New()
	r.GET("/rules/:id", h.GetRule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20001 {
		t.Errorf("expected error code 20001, got %d", resp.Code)
	}
}

func TestRuleHandler_FinalizeRule_Conflict(t *testing.T) {
	mock := &mockRuleService{finalizeErr: service.ErrRuleNotDraft}
	h := NewRuleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/rules/rule-001/finalize", jsonBody(dto.FinalizeRuleRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rules/:id/finalize", h.FinalizeRule)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20003 {
		t.Errorf("expected error code 20003, got %d", resp.Code)
	}
}

func TestRuleHandler_ReplaceSlots_DuplicateSeq(t *testing.T) {
	mock := &mockRuleService{replaceErr: service.ErrDuplicateSlotSeq}
	h := NewRuleHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/rules/rule-001/slots", jsonBody(dto.ReplaceSlotsRequest{
		Slots: []dto.SlotTemplateInput{
			{Seq: 1, Kind: "pickup", StartTime: "08:30", EndTime: "08:45"},
			{Seq: 1, Kind: "dropoff", StartTime: "15:15", EndTime: "15:30"},
		},
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/rules/:id/slots", h.ReplaceSlots)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 20004 {
		t.Errorf("expected error code 20004, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RethreadHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRethreadHandler_Rethread_Success(t *testing.T) {
	mock := &mockRethreadService{
		result: &dto.RethreadResponse{
			DatesProcessed:    14,
			RulesTouched:      3,
			InstancesUpserted: 3,
			CardsWritten:      9,
		},
	}
	h := NewRethreadHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/rethread", jsonBody(dto.RethreadRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rethread", h.Rethread)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRethreadHandler_Rethread_RuleNotFound(t *testing.T) {
	mock := &mockRethreadService{err: service.ErrRuleNotFound}
	h := NewRethreadHandler(mock)

	w := httptest.NewRecorder()
	ruleID := "rule-missing"
	req := httptest.NewRequest("POST", "/rethread", jsonBody(dto.RethreadRequest{RuleID: &ruleID}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rethread", h.Rethread)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRethreadHandler_Rethread_BadWindow(t *testing.T) {
	mock := &mockRethreadService{err: service.ErrBadWindow}
	h := NewRethreadHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/rethread", jsonBody(dto.RethreadRequest{}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/rethread", h.Rethread)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 40001 {
		t.Errorf("expected error code 40001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExceptionHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExceptionHandler_CreateException_Success(t *testing.T) {
	mock := &mockExceptionService{
		createResult: &dto.CreateExceptionResponse{
			Exception: &dto.ExceptionResponse{ID: "exc-001", RuleID: "rule-001"},
			Rethread:  &dto.RethreadResponse{DatesProcessed: 1},
		},
	}
	h := NewExceptionHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(dto.CreateExceptionRequest{
		RuleID:    "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8",
		StartDate: "2025-06-16",
		Kind:      "venue_closed",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", h.CreateException)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestExceptionHandler_CreateException_DateOrder(t *testing.T) {
	mock := &mockExceptionService{createErr: service.ErrExceptionDateOrder}
	h := NewExceptionHandler(mock)

	w := httptest.NewRecorder()
	end := "2025-06-10"
	req := httptest.NewRequest("POST", "/exceptions", jsonBody(dto.CreateExceptionRequest{
		RuleID:    "3f1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8",
		StartDate: "2025-06-16",
		EndDate:   &end,
		Kind:      "venue_closed",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/exceptions", h.CreateException)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 30001 {
		t.Errorf("expected error code 30001, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RosterHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRosterHandler_ListInstances_MissingRange(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/roster/instances", nil)

	r := gin.New()
	r.GET("/roster/instances", h.ListInstances)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRosterHandler_DayCards_Success(t *testing.T) {
	mock := &mockRosterService{
		dayResult: &dto.DayCardsResponse{
			Date: "2025-06-16",
			Cards: []dto.CardResponse{
				{ID: "card-001", Kind: "pickup", Color: "blue", Subtitle: "08:30–08:45"},
			},
		},
	}
	h := NewRosterHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/roster/days/2025-06-16/cards", nil)

	r := gin.New()
	r.GET("/roster/days/:date/cards", h.DayCards)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRosterHandler_DayCards_BadDate(t *testing.T) {
	h := NewRosterHandler(&mockRosterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/roster/days/16-06-2025/cards", nil)

	r := gin.New()
	r.GET("/roster/days/:date/cards", h.DayCards)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
