package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"testimonials/internal/config"
	"testimonials/internal/models"
	"testimonials/internal/moderation"
	"testimonials/internal/testimonials"
)

// AdminHandler serves the moderation dashboard and its HTMX actions.
type AdminHandler struct {
	svc *testimonials.Service
	cfg *config.Config
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc *testimonials.Service, cfg *config.Config) *AdminHandler {
	return &AdminHandler{svc: svc, cfg: cfg}
}

func filterFromQuery(c fiber.Ctx) moderation.Filter {
	return moderation.ParseFilter(c.Query("status"), c.Query("q"), c.Query("sort"))
}

// Index renders the moderation dashboard.
func (h *AdminHandler) Index(c fiber.Ctx) error {
	board, err := h.svc.Moderate(c.Context(), filterFromQuery(c))
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "could not load testimonials")
	}

	return c.Render("admin", MergeBranding(fiber.Map{
		"Title": "Moderation",
		"Board": board,
	}, h.cfg, c))
}

// List renders only the list partial, used by the HTMX filter controls.
func (h *AdminHandler) List(c fiber.Ctx) error {
	return h.renderList(c, filterFromQuery(c))
}

// renderList re-reads the collection and renders the list partial for f.
func (h *AdminHandler) renderList(c fiber.Ctx, f moderation.Filter) error {
	board, err := h.svc.Moderate(c.Context(), f)
	if err != nil {
		return htmxError(c, errorMessage(err))
	}
	return c.Render("partials/admin_list", fiber.Map{
		"Board": board,
	}, "")
}

// actionFilter restores the admin's view from the hx-vals sent with an action.
func actionFilter(c fiber.Ctx) moderation.Filter {
	return moderation.ParseFilter(c.FormValue("filter_status"), c.FormValue("filter_q"), c.FormValue("filter_sort"))
}

// UpdateStatus moves a testimonial to the posted status.
func (h *AdminHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	status, ok := models.ParseStatus(c.FormValue("status"))
	if !ok {
		return htmxError(c, "Unknown status.")
	}

	if err := h.svc.UpdateStatus(c.Context(), id, status); err != nil {
		return htmxError(c, errorMessage(err))
	}
	return h.renderList(c, actionFilter(c))
}

// Certify toggles the certified badge. The form carries the value the admin
// saw; without it the stored value is flipped.
func (h *AdminHandler) Certify(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if raw := c.FormValue("current"); raw != "" {
		current, perr := strconv.ParseBool(raw)
		if perr != nil {
			return htmxError(c, "Invalid certification value.")
		}
		_, err = h.svc.ToggleCertification(c.Context(), id, current)
	} else {
		_, err = h.svc.ToggleStoredCertification(c.Context(), id)
	}
	if err != nil {
		return htmxError(c, errorMessage(err))
	}
	return h.renderList(c, actionFilter(c))
}

// Delete removes a testimonial permanently.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return htmxError(c, errorMessage(err))
	}
	return h.renderList(c, actionFilter(c))
}
