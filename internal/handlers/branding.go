package handlers

import (
	"github.com/gofiber/fiber/v3"

	"testimonials/internal/config"
	"testimonials/internal/middleware"
)

// BrandingData contains site branding information for templates.
type BrandingData struct {
	SiteTitle   string
	SiteTagline string
	SiteFooter  string
	SiteLogoURL string
}

// GetBrandingData returns branding data from config for template rendering.
func GetBrandingData(cfg *config.Config) BrandingData {
	return BrandingData{
		SiteTitle:   cfg.SiteTitle,
		SiteTagline: cfg.SiteTagline,
		SiteFooter:  cfg.SiteFooter,
		SiteLogoURL: cfg.SiteLogoURL,
	}
}

// MergeBranding adds branding data and the navigation state to a fiber.Map
// for template rendering.
func MergeBranding(data fiber.Map, cfg *config.Config, c fiber.Ctx) fiber.Map {
	branding := GetBrandingData(cfg)
	data["SiteTitle"] = branding.SiteTitle
	data["SiteTagline"] = branding.SiteTagline
	data["SiteFooter"] = branding.SiteFooter
	data["SiteLogoURL"] = branding.SiteLogoURL
	data["CurrentPath"] = c.Path()
	data["IsAdmin"] = middleware.IsAdmin(c)
	return data
}
