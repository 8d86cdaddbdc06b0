package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akyairhashvil/cohortops/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNoAvailablePartner),
		errors.Is(err, service.ErrConstraintViolation):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(g *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		resp = ErrorResponse{Error: verr.Reason, Field: verr.Field}
	case errors.Is(err, service.ErrNoAvailablePartner):
		resp.Error = "everyone available has already been matched with you; try again later"
	case status == http.StatusNotFound:
		resp.Error = "not found"
	case status == http.StatusInternalServerError:
		s.log.Error("request failed", zap.String("path", g.FullPath()), zap.Error(err))
		resp.Error = "internal error"
	}
	g.AbortWithStatusJSON(status, &resp)
}

func badRequest(g *gin.Context, msg string) {
	g.AbortWithStatusJSON(http.StatusBadRequest, &ErrorResponse{Error: msg})
}

// pathID parses a positive integer path parameter.
func pathID(g *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(g.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(g, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter.
func queryID(g *gin.Context, name string) (*int64, bool) {
	raw := g.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(g, "invalid "+name)
		return nil, false
	}
	return &id, true
}
