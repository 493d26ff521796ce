package report

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Export streams the attendance report in the requested format. The
// default JSON form returns rows in the standard envelope; csv, xlsx and
// pdf return file downloads.
func (h *Handler) Export(c *gin.Context) {
	q := Query{
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		SortBy:     c.Query("sort_by"),
		Descending: c.Query("order") == "desc",
	}
	if raw := strings.TrimSpace(c.Query("employee_ids")); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				q.EmployeeIDs = append(q.EmployeeIDs, code)
			}
		}
	}
	if raw := c.Query("max_hours"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpErr := apperror.ToHTTP(attendanceerrors.ErrInvalidHoursFilter)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		q.MaxHours = &v
	}

	filename := fmt.Sprintf("attendance_%s_%s", q.StartDate, q.EndDate)
	ctx := c.Request.Context()

	switch c.DefaultQuery("format", "json") {
	case "csv":
		data, err := h.service.CSV(ctx, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "xlsx":
		data, err := h.service.XLSX(ctx, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.xlsx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "pdf":
		data, err := h.service.PDF(ctx, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		rows, err := h.service.Rows(ctx, q)
		if err != nil {
			h.fail(c, err)
			return
		}
		response.Success(c, http.StatusOK, rows, nil)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
