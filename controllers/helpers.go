package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-ops/availability"
	"hotel-ops/clock"
	"hotel-ops/middleware"
	"hotel-ops/services"
	"hotel-ops/utils"
)

// auditor records who changed what.
type auditor interface {
	Record(ctx context.Context, who services.Identity, action, resourceType, resourceID string, before, after any, ip string)
}

type nopAuditor struct{}

func (nopAuditor) Record(context.Context, services.Identity, string, string, string, any, any, string) {
}

func auditOrNop(a auditor) auditor {
	if a == nil {
		return nopAuditor{}
	}
	return a
}

// respondError maps service errors onto HTTP statuses and the error envelope.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var unavailable *services.UnavailableError
	switch {
	case errors.Is(err, availability.ErrInvalidRange):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidRange", "end date must be after start date")
	case errors.As(err, &unavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "error.unavailable",
				"message": services.ErrUnavailable.Error(),
				"dates":   unavailable.Dates,
			},
		})
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, "error.invalidStatus", err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, services.ErrInUse):
		utils.JSONError(c, http.StatusConflict, "error.inUse", err.Error())
	case errors.Is(err, services.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, "error.duplicate", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "error.invalidCredentials", "invalid email or password")
	case errors.Is(err, services.ErrSessionExpired):
		utils.JSONError(c, http.StatusUnauthorized, "error.sessionExpired", "session expired, please log in again")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "error.forbidden", err.Error())
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func badPayload(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid request payload",
			"details": err.Error(),
		},
	})
}

// bindMap decodes a JSON object body for the map-driven update paths.
func bindMap(c *gin.Context) (map[string]interface{}, bool) {
	var m map[string]interface{}
	if err := c.ShouldBindJSON(&m); err != nil {
		badPayload(c, err)
		return nil, false
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, true
}

func identity(c *gin.Context) services.Identity {
	ident, _ := middleware.IdentityFrom(c)
	return ident
}

const defaultRangeDays = 30

// dateRange reads ?start=&end= (also from/to). Missing start means today;
// missing end means start plus 30 days.
func dateRange(c *gin.Context, clk clock.Clock) (time.Time, time.Time, error) {
	rawStart := firstQuery(c, "start", "from", "startDate")
	rawEnd := firstQuery(c, "end", "to", "endDate")

	start := clock.Today(clk)
	if rawStart != "" {
		d, err := availability.ParseDate(rawStart)
		if err != nil {
			return time.Time{}, time.Time{}, invalidQuery("start", err)
		}
		start = d
	}
	end := start.AddDate(0, 0, defaultRangeDays)
	if rawEnd != "" {
		d, err := availability.ParseDate(rawEnd)
		if err != nil {
			return time.Time{}, time.Time{}, invalidQuery("end", err)
		}
		end = d
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, &availability.InvalidRangeError{Start: start, End: end}
	}
	return start, end, nil
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}

func invalidQuery(name string, err error) error {
	return &queryError{name: name, err: err}
}

type queryError struct {
	name string
	err  error
}

func (e *queryError) Error() string { return e.name + ": " + e.err.Error() }

func (e *queryError) Unwrap() []error { return []error{services.ErrValidation, e.err} }

func sendXLSX(c *gin.Context, prefix string, data []byte) {
	name := fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, services.XLSXContentType, data)
}
