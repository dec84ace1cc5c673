package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/boumia-pos/internal/domain/entity"
	"github.com/sangkips/boumia-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/boumia-pos/pkg/pagination"
)

// GetUserID extracts the cashier ID from the Gin context
func GetUserID(c *gin.Context) int64 {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	id, _ := userID.(int64)
	return id
}

// GetSessionID extracts the terminal session ID from the Gin context
func GetSessionID(c *gin.Context) uuid.UUID {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return uuid.Nil
	}
	id, _ := sessionID.(uuid.UUID)
	return id
}

// GetSession returns the terminal session loaded by the session middleware.
// It writes a 401 and returns nil when there is none.
func GetSession(c *gin.Context) *entity.TerminalSession {
	val, exists := c.Get("session")
	if exists {
		if session, ok := val.(*entity.TerminalSession); ok && session != nil {
			return session
		}
	}
	response.Unauthorized(c, "User not authenticated")
	return nil
}

// paramID parses a positive numeric path parameter, writing a 400 on failure
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	return params
}
