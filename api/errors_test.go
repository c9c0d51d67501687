package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return ctx
}

// TestParseRange verifica los límites de la ventana de fechas.
func TestParseRange(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)

	t.Run("date only end covers the whole day", func(t *testing.T) {
		from, to, err := parseRange(testContext(t, "/x?start_date=2026-10-01&end_date=2026-10-15"), brt)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, brt), from)
		assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, brt), to)
	})

	t.Run("RFC3339 end includes the boundary instant", func(t *testing.T) {
		_, to, err := parseRange(testContext(t, "/x?end_date=2026-10-15T14:30:00Z"), brt)
		require.NoError(t, err)

		boundary := time.Date(2026, time.October, 15, 14, 30, 0, 0, time.UTC)
		assert.True(t, boundary.Before(to), "an entry at exactly end_date is inside the window")
		assert.False(t, boundary.Add(time.Millisecond).Before(to))
	})

	t.Run("missing bounds stay open", func(t *testing.T) {
		from, to, err := parseRange(testContext(t, "/x"), brt)
		require.NoError(t, err)
		assert.True(t, from.IsZero())
		assert.True(t, to.IsZero())
	})

	t.Run("malformed date", func(t *testing.T) {
		_, _, err := parseRange(testContext(t, "/x?end_date=15/10/2026"), brt)
		assert.Error(t, err)
	})
}
