package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetEmployeeID extracts the cashier ID from the Gin context
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	val, exists := c.Get("employee_id")
	if !exists {
		return nil
	}
	employeeID, ok := val.(uuid.UUID)
	if !ok {
		return nil
	}
	return &employeeID
}

// GetUsername extracts the cashier username from the Gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get("username")
	if !exists {
		return ""
	}
	return username.(string)
}

// IsAdmin checks if the authenticated cashier has admin rights
func IsAdmin(c *gin.Context) bool {
	val, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
