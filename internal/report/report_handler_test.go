package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	rowsFn func(ctx context.Context, q Query) ([]Row, error)
}

func (f *fakeReportService) Rows(ctx context.Context, q Query) ([]Row, error) {
	return f.rowsFn(ctx, q)
}

func (f *fakeReportService) CSV(ctx context.Context, q Query) ([]byte, error) {
	return nil, nil
}

func (f *fakeReportService) XLSX(ctx context.Context, q Query) ([]byte, error) {
	return nil, nil
}

func (f *fakeReportService) PDF(ctx context.Context, q Query) ([]byte, error) {
	return nil, nil
}

func performExport(t *testing.T, svc Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)
	c.Request = req
	NewHandler(svc).Export(c)
	return w
}

func TestHandler_Export_MaxHoursFilter(t *testing.T) {
	var got Query
	svc := &fakeReportService{rowsFn: func(ctx context.Context, q Query) ([]Row, error) {
		got = q
		return []Row{}, nil
	}}

	w := performExport(t, svc, "/reports/attendance?start_date=2024-06-01&end_date=2024-06-30&max_hours=6.5")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.MaxHours)
	assert.Equal(t, 6.5, *got.MaxHours)
}

func TestHandler_Export_BadMaxHoursRejected(t *testing.T) {
	called := false
	svc := &fakeReportService{rowsFn: func(ctx context.Context, q Query) ([]Row, error) {
		called = true
		return nil, nil
	}}

	w := performExport(t, svc, "/reports/attendance?start_date=2024-06-01&end_date=2024-06-30&max_hours=lots")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}
