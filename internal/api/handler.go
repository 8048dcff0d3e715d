package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hostel-allocation-backend/internal/auth"
	"hostel-allocation-backend/internal/store"
	"hostel-allocation-backend/internal/workflow"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	engine  *workflow.Engine
	tokens  *auth.Manager
	webpush *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, engine *workflow.Engine, tokens *auth.Manager, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		engine:  engine,
		tokens:  tokens,
		webpush: webpushOptions,
	}
}
