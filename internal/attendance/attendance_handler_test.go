package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	markFn    func(ctx context.Context, req MarkRequest) (MarkResult, error)
	hoursFn   func(ctx context.Context, code, date string) (WorkingHoursResponse, error)
	summaryFn func(ctx context.Context, start, end string, codes []string, maxHours *float64) ([]SummaryRow, error)
}

func (f *fakeService) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	return f.markFn(ctx, req)
}

func (f *fakeService) WorkingHours(ctx context.Context, code, date string) (WorkingHoursResponse, error) {
	return f.hoursFn(ctx, code, date)
}

func (f *fakeService) Summary(ctx context.Context, start, end string, codes []string, maxHours *float64) ([]SummaryRow, error) {
	return f.summaryFn(ctx, start, end, codes, maxHours)
}

func (f *fakeService) Trends(ctx context.Context, kind string, start, end time.Time, interval string) (TrendsResponse, error) {
	return TrendsResponse{}, nil
}

func (f *fakeService) RecentActivity(ctx context.Context) ([]RecentActivityRow, error) {
	return nil, nil
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestHandler_Mark(t *testing.T) {
	svc := &fakeService{
		markFn: func(ctx context.Context, req MarkRequest) (MarkResult, error) {
			assert.Equal(t, "Alice", req.RecognizedName)
			return MarkResult{Status: StatusSuccess, Action: ActionIn, Message: "In Time. Welcome, Alice!"}, nil
		},
	}
	h := NewHandler(svc)

	w := performJSON(t, h.Mark, http.MethodPost, "/attendance/mark", gin.H{"recognized_name": "Alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Ok   bool       `json:"ok"`
		Data MarkResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, ActionIn, envelope.Data.Action)
}

func TestHandler_Mark_BadPayload(t *testing.T) {
	h := NewHandler(&fakeService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendance/mark", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Mark(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_WorkingHours_NotFound(t *testing.T) {
	svc := &fakeService{
		hoursFn: func(ctx context.Context, code, date string) (WorkingHoursResponse, error) {
			return WorkingHoursResponse{}, attendanceerrors.ErrEmployeeNotFound
		},
	}
	h := NewHandler(svc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/working-hours/EMP001/2024-06-10", nil)
	c.Params = gin.Params{{Key: "employee_id", Value: "EMP001"}, {Key: "date", Value: "2024-06-10"}}
	h.WorkingHours(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Summary_ParsesFilters(t *testing.T) {
	var gotCodes []string
	var gotMax *float64
	svc := &fakeService{
		summaryFn: func(ctx context.Context, start, end string, codes []string, maxHours *float64) ([]SummaryRow, error) {
			gotCodes = codes
			gotMax = maxHours
			return []SummaryRow{}, nil
		},
	}
	h := NewHandler(svc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/attendance/summary?start_date=2024-06-01&end_date=2024-06-10&employee_ids=EMP001,%20EMP002&max_hours=6.5", nil)
	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"EMP001", "EMP002"}, gotCodes)
	require.NotNil(t, gotMax)
	assert.Equal(t, 6.5, *gotMax)
}

func TestHandler_Summary_RejectsHalfRange(t *testing.T) {
	h := NewHandler(&fakeService{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendance/summary?start_date=2024-06-01", nil)
	h.Summary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
