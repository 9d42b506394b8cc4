package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Identity{UserID: 2, Email: "alice@example.com", Name: "Alice", Role: domain.RoleUser}
	owner = domain.Identity{UserID: 7, Email: "carol@example.com", Name: "Carol", Role: domain.RoleFlightowner}
	root  = domain.Identity{UserID: 1, Email: "admin@example.com", Name: "Root", Role: domain.RoleAdmin}
)

// newTestContext builds a context for calling a handler method directly.
func newTestContext(t *testing.T, method, path string, body any, who *domain.Identity, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if who != nil {
		c.Set(identityKey, *who)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
