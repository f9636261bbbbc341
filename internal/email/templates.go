package email

import (
	"fmt"
	"html"
	"strings"

	"testimonials/internal/config"
	"testimonials/internal/models"
)

// digestLimit caps how many testimonials a digest lists individually.
const digestLimit = 10

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .button { display: inline-block; background: #4f46e5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; margin: 10px 0; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .stars { color: #f59e0b; }
        blockquote { margin: 10px 0; padding-left: 12px; border-left: 3px solid #c7d2fe; color: #4b5563; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func author(t *models.Testimonial) string {
	if t.BrandName != "" {
		return fmt.Sprintf("%s (%s)", t.Name, t.BrandName)
	}
	return t.Name
}

// TestimonialSubmitted generates the admin email for a new submission.
func (t *Templates) TestimonialSubmitted(rec *models.Testimonial) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] New testimonial from %s", t.cfg.SiteTitle, rec.Name)

	email := rec.Email
	if email == "" {
		email = "not provided"
	}

	content := fmt.Sprintf(`
        <p>A new testimonial has been submitted and is waiting for review.</p>

        <div class="info-box">
            <p><span class="label">From:</span> %s</p>
            <p><span class="label">Email:</span> %s</p>
            <p><span class="label">Rating:</span> <span class="stars">%s</span></p>
            <blockquote>%s</blockquote>
        </div>

        <p style="text-align: center;">
            <a href="%s/admin" class="button">Review in Dashboard</a>
        </p>
    `,
		html.EscapeString(author(rec)),
		html.EscapeString(email),
		stars(rec.Rating),
		html.EscapeString(rec.Message),
		t.cfg.BaseURL,
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`New testimonial pending review

From: %s
Email: %s
Rating: %d/5

%s

Review at: %s/admin

--
%s
%s`,
		author(rec),
		email,
		rec.Rating,
		rec.Message,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

// PendingDigest generates the periodic reminder listing testimonials that
// still await review. At most digestLimit entries are listed.
func (t *Templates) PendingDigest(pending []models.Testimonial) (subject, htmlBody, textBody string) {
	noun := "testimonials"
	if len(pending) == 1 {
		noun = "testimonial"
	}
	subject = fmt.Sprintf("[%s] %d %s awaiting review", t.cfg.SiteTitle, len(pending), noun)

	shown := pending
	if len(shown) > digestLimit {
		shown = shown[:digestLimit]
	}

	var rows, lines strings.Builder
	for i := range shown {
		rec := &shown[i]
		fmt.Fprintf(&rows, `<p><span class="label">%s</span> <span class="stars">%s</span><br>%s</p>`,
			html.EscapeString(author(rec)), stars(rec.Rating), html.EscapeString(truncate(rec.Message, 140)))
		fmt.Fprintf(&lines, "- %s (%d/5): %s\n", author(rec), rec.Rating, truncate(rec.Message, 140))
	}
	more := ""
	moreText := ""
	if extra := len(pending) - len(shown); extra > 0 {
		more = fmt.Sprintf("<p>...and %d more.</p>", extra)
		moreText = fmt.Sprintf("...and %d more.\n", extra)
	}

	content := fmt.Sprintf(`
        <p>The following testimonials are still waiting for a decision.</p>

        <div class="info-box">
            %s
            %s
        </div>

        <p style="text-align: center;">
            <a href="%s/admin?status=pending" class="button">Open the review queue</a>
        </p>
    `, rows.String(), more, t.cfg.BaseURL)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`%d %s awaiting review

%s%s
Review at: %s/admin?status=pending

--
%s
%s`,
		len(pending), noun,
		lines.String(), moreText,
		t.cfg.BaseURL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
