package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/internal/mirror"
	"invitely/api-gateway/internal/render"
	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/models"
)

// Prefiller defines the operations handlers expect from the prefill assistant.
// The concrete implementation is provided by the aiclient package.
type Prefiller interface {
	Enabled() bool
	Prefill(ctx context.Context, answers []models.Answer) (map[string]string, error)
}

// ApplicationHandler holds shared dependencies for handlers. Everything is
// built once at startup and read-only afterwards.
type ApplicationHandler struct {
	Validator *fields.Validator
	Defaults  fields.Defaults
	Store     *store.Store
	Renderer  *render.Renderer
	Prefiller Prefiller
	Mirror    mirror.Mirror
	Logger    *logrus.Logger
	Questions []string

	validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
// A nil mirror disables mirroring.
func NewApplicationHandler(
	defaults fields.Defaults,
	st *store.Store,
	renderer *render.Renderer,
	prefiller Prefiller,
	m mirror.Mirror,
	logger *logrus.Logger,
	questions []string,
) *ApplicationHandler {
	if m == nil {
		m = mirror.Noop{}
	}
	return &ApplicationHandler{
		Validator: fields.NewValidator(defaults),
		Defaults:  defaults,
		Store:     st,
		Renderer:  renderer,
		Prefiller: prefiller,
		Mirror:    m,
		Logger:    logger,
		Questions: questions,
		validate:  validator.New(),
	}
}
