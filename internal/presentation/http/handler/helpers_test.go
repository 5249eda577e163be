package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestGetEmployeeID(t *testing.T) {
	c := newAuthedContext(t)
	assert.Nil(t, GetEmployeeID(c))

	id := uuid.New()
	c.Set("employee_id", id)
	got := GetEmployeeID(c)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestGetUsername(t *testing.T) {
	c := newAuthedContext(t)
	assert.Empty(t, GetUsername(c))

	c.Set("username", "master")
	assert.Equal(t, "master", GetUsername(c))
}

func TestIsAdmin(t *testing.T) {
	c := newAuthedContext(t)
	assert.False(t, IsAdmin(c))

	c.Set("is_admin", false)
	assert.False(t, IsAdmin(c))

	c.Set("is_admin", true)
	assert.True(t, IsAdmin(c))
}
