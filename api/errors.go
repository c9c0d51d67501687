package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"api_backoffice/internal/apperr"
)

// respondError maps the service error kinds onto HTTP statuses. Store failures
// are logged and hidden behind a generic message.
func respondError(ctx *gin.Context, logger *zap.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrInvalidArgument):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("failed to "+action, zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

const dateLayout = "2006-01-02"

// parseTimeParam reads an RFC3339 timestamp or a plain date. dateOnly reports
// which of the two was given. An empty parameter yields the zero time.
func parseTimeParam(ctx *gin.Context, name string, loc *time.Location) (t time.Time, dateOnly bool, err error) {
	s := ctx.Query(name)
	if s == "" {
		return time.Time{}, false, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, apperr.Invalid("%s must be YYYY-MM-DD or RFC3339", name)
	}
	return t, false, nil
}

// parseRange reads start_date and end_date and returns a half-open [from, to)
// window. A date-only end_date covers the whole day, so to is the start of the
// following day. An RFC3339 end_date is inclusive at millisecond resolution,
// the precision stored dates keep in the document store.
func parseRange(ctx *gin.Context, loc *time.Location) (from, to time.Time, err error) {
	from, _, err = parseTimeParam(ctx, "start_date", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, dateOnly, err := parseTimeParam(ctx, "end_date", loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	switch {
	case dateOnly:
		to = to.AddDate(0, 0, 1)
	case !to.IsZero():
		to = to.Truncate(time.Millisecond).Add(time.Millisecond)
	}
	return from, to, nil
}

func parseIntParam(ctx *gin.Context, name string) (int, bool, error) {
	s := ctx.Query(name)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, apperr.Invalid("%s must be an integer", name)
	}
	return n, true, nil
}
