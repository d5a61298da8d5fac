package testutil

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	db := NewMockDB(t)
	defer db.Close()

	assert.NotNil(t, db.DB)
	assert.NotNil(t, db.Mock)
	db.ExpectationsWereMet(t)
}

func TestNewSQLiteStore(t *testing.T) {
	store := NewSQLiteStore(t)

	for _, table := range []string{"projects", "workers", "vendors", "inventory_items",
		"project_worker_assignments", "worker_payments", "expenses", "activity_log"} {
		assert.True(t, store.DB.Migrator().HasTable(table), table)
		assert.Equal(t, int64(0), CountRows(t, store.DB, table, ""))
	}
}

func TestServeAndDecode(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "NOT_FOUND", "message": "gone"}})
	})

	w := Serve(t, engine, http.MethodPost, "/echo", map[string]any{"name": "cement"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := DecodeData[map[string]string](t, w)
	assert.Equal(t, "cement", data["name"])

	w = Serve(t, engine, http.MethodGet, "/fail", nil, nil)
	AssertErrorResponse(t, w, http.StatusNotFound, "NOT_FOUND")
}
