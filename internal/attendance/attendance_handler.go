package attendance

import (
	"net/http"
	"strconv"
	"strings"
	"time"

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

func (h *Handler) Mark(c *gin.Context) {
	var req MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	result, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) WorkingHours(c *gin.Context) {
	resp, err := h.service.WorkingHours(c.Request.Context(), c.Param("employee_id"), c.Param("date"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	start, end, err := resolveRange(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	var codes []string
	if raw := strings.TrimSpace(c.Query("employee_ids")); raw != "" {
		for _, code := range strings.Split(raw, ",") {
			if code = strings.TrimSpace(code); code != "" {
				codes = append(codes, code)
			}
		}
	}

	var maxHours *float64
	if raw := c.Query("max_hours"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpErr := apperror.ToHTTP(attendanceerrors.ErrInvalidHoursFilter)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
		maxHours = &v
	}

	rows, err := h.service.Summary(c.Request.Context(), start, end, codes, maxHours)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

func (h *Handler) Trends(c *gin.Context) {
	start, end, err := resolveRange(c)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	startDate, _ := time.Parse("2006-01-02", start)
	endDate, _ := time.Parse("2006-01-02", end)

	resp, err := h.service.Trends(
		c.Request.Context(),
		c.Query("kind"),
		startDate,
		endDate,
		c.DefaultQuery("interval", IntervalDaily),
	)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecentActivity(c *gin.Context) {
	rows, err := h.service.RecentActivity(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, rows, nil)
}

// resolveRange turns either explicit start/end dates or a named period
// (day, week, month, year) into a validated date pair.
func resolveRange(c *gin.Context) (start, end string, err error) {
	start = c.Query("start_date")
	end = c.Query("end_date")
	if start == "" && end == "" {
		from, to := PeriodDates(time.Now(), c.DefaultQuery("period", "day"))
		return from.Format("2006-01-02"), to.Format("2006-01-02"), nil
	}
	if start == "" || end == "" {
		return "", "", attendanceerrors.ErrInvalidDate
	}
	from, perr := time.Parse("2006-01-02", start)
	if perr != nil {
		return "", "", attendanceerrors.ErrInvalidDate
	}
	to, perr := time.Parse("2006-01-02", end)
	if perr != nil {
		return "", "", attendanceerrors.ErrInvalidDate
	}
	if to.Before(from) {
		return "", "", attendanceerrors.ErrInvalidDate
	}
	return start, end, nil
}
