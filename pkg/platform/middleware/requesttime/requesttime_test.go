package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tradeverify/pkg/requestcontext"

	"github.com/stretchr/testify/assert"
)

func TestWithClockPinsRequestTime(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	var first, second time.Time
	h := WithClock(func() time.Time { return fixed })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = requestcontext.Now(r.Context())
		second = requestcontext.Now(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, fixed.Equal(first))
	assert.Equal(t, time.UTC, first.Location())
	assert.Equal(t, first, second)
}
