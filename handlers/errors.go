package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"invitely/api-gateway/internal/aiclient"
	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/utils"
)

// isClientError reports whether err is caused by the caller's input.
func isClientError(err error) bool {
	var verr *fields.ValidationError
	return errors.As(err, &verr) || errors.Is(err, aiclient.ErrNoAnswers)
}

// respondError converts err into the JSON error envelope: 400 for input
// problems, 500 for everything else.
func (h *ApplicationHandler) respondError(c *fiber.Ctx, err error) error {
	if isClientError(err) {
		h.Logger.Warnf("Rejected request: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}
	h.Logger.Errorf("Request failed: %v", err)
	return utils.RespondWithError(c, fiber.StatusInternalServerError, "Server error: "+err.Error())
}

// ErrorHandler is the fiber error handler for errors returned by handlers
// and middleware, e.g. unknown routes or oversized bodies.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return utils.RespondWithError(c, code, err.Error())
}
