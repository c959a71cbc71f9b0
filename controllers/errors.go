// controllers/errors.go
package controllers

import (
	"errors"
	"net/http"

	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the engine's error taxonomy onto HTTP
// status codes.
func respondServiceError(c *gin.Context, err error) {
	var (
		verr *services.ValidationError
		nerr *services.NotFoundError
		cerr *services.ConflictError
		aerr *services.AggregationError
	)
	switch {
	case errors.As(err, &verr):
		utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		utils.RespondWithError(c, http.StatusNotFound, nerr.Error())
	case errors.As(err, &cerr):
		utils.RespondWithError(c, http.StatusConflict, cerr.Error())
	case errors.As(err, &aerr):
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate report")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// operatorFromContext reads the authenticated operator set by the auth
// middleware.
func operatorFromContext(c *gin.Context) services.Operator {
	op := services.Operator{}
	if name, ok := c.Get("userName"); ok {
		op.Name, _ = name.(string)
	}
	if loc, ok := c.Get("userLocation"); ok {
		op.Location, _ = loc.(string)
	}
	return op
}
