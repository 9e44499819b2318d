package handlers

import (
	"html"

	"github.com/gofiber/fiber/v2"
)

const legalStyle = `body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}`

// LegalHandler serves the static privacy policy and terms pages linked from
// the registration screens.
type LegalHandler struct {
	supportEmail string
}

func NewLegalHandler(supportEmail string) *LegalHandler {
	return &LegalHandler{supportEmail: html.EscapeString(supportEmail)}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(legalPage("Privacy Policy", `
<h2>Information We Collect</h2>
<p>We collect your name, email address, phone number and address when you register as a customer or service provider. Providers may also share their location so customers can find nearby services.</p>
<h2>How We Use Your Information</h2>
<p>Your details are shared with the other party of a booking so the service can be delivered. We use your email to send verification codes and booking notifications.</p>
<h2>Data Storage</h2>
<p>Passwords are stored hashed. We do not sell your personal information to third parties.</p>
<h2>Account Deletion</h2>
<p>Deleting your account removes your profile, bookings and reviews.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact us at `+h.supportEmail+`</p>`))
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(legalPage("Terms of Service", `
<h2>Acceptance</h2>
<p>By using ServiceSpot, you agree to these terms.</p>
<h2>Bookings</h2>
<p>ServiceSpot connects customers with independent service providers. Prices, schedules and the quality of work are agreed between the customer and the provider.</p>
<h2>Reviews</h2>
<p>Reviews must describe a completed booking. Offensive language, links and spam are rejected.</p>
<h2>Termination</h2>
<p>We may suspend or remove accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact us at `+h.supportEmail+`</p>`))
}

func legalPage(title, body string) string {
	return `<!DOCTYPE html>
<html><head><title>` + title + ` - ServiceSpot</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>` + legalStyle + `</style>
</head><body>
<h1>` + title + `</h1>
<p>Last updated: October 2026</p>` + body + `
</body></html>`
}
