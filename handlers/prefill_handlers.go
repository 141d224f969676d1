package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"invitely/api-gateway/internal/aiclient"
	"invitely/api-gateway/models"
	"invitely/api-gateway/utils"
)

// PrefillResponse carries the derived field values, one per schema key.
type PrefillResponse struct {
	OK   bool              `json:"ok"`
	Data map[string]string `json:"data"`
}

// PrefillInvite godoc
// @Summary Prefill invite fields
// @Description Sends free-text question/answer pairs to the language model and returns values for every schema field.
// @Description Fields the model cannot fill with confidence are empty strings.
// @Tags invites
// @Accept  json
// @Produce  json
// @Param   request body models.PrefillRequest true "Question/answer pairs"
// @Success 200 {object} PrefillResponse "Derived field values"
// @Failure 400 {object} utils.ErrorResponse "Missing or malformed answers"
// @Failure 500 {object} utils.ErrorResponse "Model not configured or model call failed"
// @Router /prefill [post]
func (h *ApplicationHandler) PrefillInvite(c *fiber.Ctx) error {
	h.Logger.Info("Received prefill request")

	req := new(models.PrefillRequest)
	if err := c.BodyParser(req); err != nil {
		h.Logger.Warnf("Error parsing prefill payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	if err := h.validate.Struct(req); err != nil {
		h.Logger.Warnf("Validation error for prefill payload: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Validation failed: %s", utils.FormatValidationErrors(err)[0]))
	}

	if h.Prefiller == nil {
		return h.respondError(c, aiclient.ErrMissingAPIKey)
	}

	data, err := h.Prefiller.Prefill(c.UserContext(), req.Answers)
	if err != nil {
		return h.respondError(c, err)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, PrefillResponse{OK: true, Data: data})
}
