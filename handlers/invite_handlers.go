package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"invitely/api-gateway/internal/fields"
	"invitely/api-gateway/internal/render"
	"invitely/api-gateway/internal/store"
	"invitely/api-gateway/models"
	"invitely/api-gateway/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CreateInviteResponse is returned when an invite was created.
type CreateInviteResponse struct {
	OK              bool   `json:"ok"`
	InviteID        string `json:"invite_id"`
	URL             string `json:"url"`
	DirectStaticURL string `json:"direct_static_url"`
}

// InviteURL is the short shareable path of an invite.
func InviteURL(id string) string {
	return "/invites/" + id + "/"
}

// CreatePage serves the invite creation form.
func (h *ApplicationHandler) CreatePage(c *fiber.Ctx) error {
	page := render.NewFormPage(h.Defaults, h.Prefiller != nil && h.Prefiller.Enabled(), h.Questions)
	body, err := h.Renderer.RenderCreateForm(page)
	if err != nil {
		h.Logger.Errorf("Error rendering create form: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not render the creation form")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}

// CreateInvite godoc
// @Summary Create an invite
// @Description Validates the text fields and four photos, stores them and renders the invite page.
// @Description Photos are sent as photo_cover, photo_story, photo_details and photo_rsvp, or as exactly four files in "photos".
// @Tags invites
// @Accept  multipart/form-data
// @Produce  json
// @Success 200 {object} CreateInviteResponse "Invite created"
// @Failure 400 {object} utils.ErrorResponse "Missing field or unsupported photo"
// @Failure 500 {object} utils.ErrorResponse "Storage or rendering failure"
// @Router /create [post]
func (h *ApplicationHandler) CreateInvite(c *fiber.Ctx) error {
	h.Logger.Info("Received request to create an invite")

	form, err := c.MultipartForm()
	if err != nil {
		h.Logger.Warnf("Error parsing multipart form: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid multipart form: %v", err))
	}

	raw := new(fields.InviteFields)
	if err := c.BodyParser(raw); err != nil {
		h.Logger.Warnf("Error parsing invite fields: %v", err)
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid form fields: %v", err))
	}

	sub, err := h.Validator.Validate(*raw, form.File)
	if err != nil {
		return h.respondError(c, err)
	}

	inv, err := h.Store.Create(sub, h.Renderer.RenderInvite)
	if err != nil {
		return h.respondError(c, err)
	}

	if h.Mirror.Enabled() {
		if err := h.Mirror.Publish(c.UserContext(), inv, sub.Values()); err != nil {
			h.Logger.Warnf("Invite %s created but mirroring failed: %v", inv.ID, err)
		}
	}

	h.Logger.WithField("invite_id", inv.ID).Info("Invite created successfully")
	return utils.RespondWithJSON(c, fiber.StatusOK, CreateInviteResponse{
		OK:              true,
		InviteID:        inv.ID,
		URL:             InviteURL(inv.ID),
		DirectStaticURL: inv.DirectStaticURL,
	})
}

// ViewInvite serves the stored page of an invite, or 404.
func (h *ApplicationHandler) ViewInvite(c *fiber.Ctx) error {
	inviteID := utils.SanitizeInput(c.Params("id"))

	pagePath, err := h.Store.PagePath(inviteID)
	if errors.Is(err, store.ErrInviteNotFound) {
		h.Logger.Infof("Invite %q not found", inviteID)
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusNotFound).SendString("Invite not found")
	}
	if err != nil {
		h.Logger.Errorf("Error locating invite %s: %v", inviteID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load invite")
	}

	page, err := os.ReadFile(pagePath)
	if err != nil {
		h.Logger.Errorf("Error reading invite %s: %v", inviteID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "could not load invite")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(page)
}

// ListInvitesResponse is the body of a successful invite listing.
type ListInvitesResponse struct {
	OK   bool                  `json:"ok"`
	Data []models.InviteRecord `json:"data"`
}

// ListInvites godoc
// @Summary List recent invites
// @Description Lists invites recorded in the mirror index, newest first. Only available when the Supabase mirror is configured.
// @Tags invites
// @Produce  json
// @Param   limit query int false "Maximum number of invites (1-100)"
// @Success 200 {object} ListInvitesResponse "Recent invites"
// @Failure 404 {object} utils.ErrorResponse "Mirror not configured"
// @Failure 500 {object} utils.ErrorResponse "Mirror query failed"
// @Router /invites [get]
func (h *ApplicationHandler) ListInvites(c *fiber.Ctx) error {
	if !h.Mirror.Enabled() {
		return utils.RespondWithError(c, fiber.StatusNotFound, "invite index is not enabled")
	}

	limit := c.QueryInt("limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	records, err := h.Mirror.Recent(c.UserContext(), limit)
	if err != nil {
		return h.respondError(c, err)
	}
	h.Logger.Infof("Successfully fetched %d invites", len(records))
	return utils.RespondWithJSON(c, fiber.StatusOK, ListInvitesResponse{OK: true, Data: records})
}
