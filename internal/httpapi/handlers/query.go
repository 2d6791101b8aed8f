package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/stockpilot/internal/httpapi/response"
)

// QueryResolver is what the handler needs from the engine.
type QueryResolver interface {
	ResolveQuery(ctx context.Context, query string) string
}

type QueryHandler struct {
	resolver QueryResolver
}

func NewQueryHandler(resolver QueryResolver) *QueryHandler {
	return &QueryHandler{resolver: resolver}
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// POST /v1/query
//
// Pipeline failures (unsupported items, bad quantities, store outages)
// resolve into the composed text with a 200; only a malformed request body
// is an HTTP-level error.
func (h *QueryHandler) Resolve(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("query is required"))
		return
	}

	msg := h.resolver.ResolveQuery(c.Request.Context(), req.Query)
	response.RespondOK(c, queryResponse{Response: msg})
}
