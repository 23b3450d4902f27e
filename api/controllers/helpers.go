package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/speedcraftlabs/gearstock-backend/api/middleware"
	pkgerrors "github.com/speedcraftlabs/gearstock-backend/pkg/errors"
)

// idParam reads a positive numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}

// actorRef returns the authenticated user id for ledger and event attribution,
// or nil when the request carries no user context.
func actorRef(r *http.Request) *int64 {
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}
