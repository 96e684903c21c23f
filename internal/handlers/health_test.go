package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/join-board-api/internal/testutil"
)

func TestHealthHandler_CheckHealth(t *testing.T) {
	db := testutil.NewDB(t)

	c, w := newContext(http.MethodGet, "/health", nil, 0)
	NewHealthHandler(db, nil).CheckHealth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeObject(t, w)
	assert.Equal(t, StatusOk, body["status"])
	assert.Equal(t, map[string]interface{}{"database": StatusOk, "cache": StatusDisabled}, body["services"])

	sqlDB, err := db.DB()
	assert.NoError(t, err)
	sqlDB.Close()

	c, w = newContext(http.MethodGet, "/health", nil, 0)
	NewHealthHandler(db, nil).CheckHealth(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, StatusDown, decodeObject(t, w)["status"])
}
