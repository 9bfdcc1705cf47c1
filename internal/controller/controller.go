// Package controller is the HTTP boundary: request binding, identity
// extraction and the mapping from service errors onto status codes. All
// business rules live in the services.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lapados-backend/internal/db/query"
	"lapados-backend/internal/model"
	"lapados-backend/internal/service"
	logger "lapados-backend/pkg/logging"
)

// respondError maps the service error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses the numeric :id segment. Returns 0 and responds 400 when it
// is not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// actorFrom rebuilds the authenticated user from the JWT claims stored by
// the auth middleware. Enough for authorship and role checks without a DB
// round trip.
func actorFrom(c *gin.Context) *model.User {
	idVal, _ := c.Get("user_id")
	id, _ := idVal.(uint)
	nameVal, _ := c.Get("full_name")
	name, _ := nameVal.(string)
	emailVal, _ := c.Get("email")
	email, _ := emailVal.(string)
	roleVal, _ := c.Get("role")
	role, _ := roleVal.(string)
	return &model.User{ID: id, FullName: name, Email: email, Role: role}
}

// listParams reads sort/limit from the query string for plain GET lists.
func listParams(c *gin.Context) query.Params {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return query.Params{
		Sort:  c.Query("sort"),
		Limit: limit,
	}
}

// filterParams binds the {filter, sort, limit} body of POST /filter.
func filterParams(c *gin.Context) (query.Params, bool) {
	var p query.Params
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return p, false
	}
	return p, true
}
