package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
)

type EmailService struct {
	mailer mail.Mailer
}

func NewEmailService(mailer mail.Mailer) *EmailService {
	return &EmailService{mailer: mailer}
}

func (s *EmailService) SendOTP(ctx context.Context, to, code, otpType string) error {
	if err := s.mailer.Send(ctx, to, otpSubject(otpType), otpBody(code, otpType)); err != nil {
		slog.Error("failed to send OTP email", "to", to, "otp_type", otpType, "error", err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	slog.Info("OTP email sent", "to", to, "otp_type", otpType)
	return nil
}

func otpSubject(otpType string) string {
	switch otpType {
	case models.OTPTypeRegistration:
		return "ServiceSpot - Verify Your Email"
	case models.OTPTypePasswordReset:
		return "ServiceSpot - Password Reset OTP"
	default:
		return "ServiceSpot - OTP Verification"
	}
}

func otpBody(code, otpType string) string {
	action := "reset your password"
	if otpType == models.OTPTypeRegistration {
		action = "verify your email"
	}
	return fmt.Sprintf(otpTemplate, action, code)
}

const otpTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
  .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
  .otp-code { font-size: 32px; font-weight: bold; color: #667eea; letter-spacing: 5px; text-align: center; }
  .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>ServiceSpot</h1></div>
  <div class="content">
    <p>Hello,</p>
    <p>You have requested to %s. Please use the code below:</p>
    <div class="otp-code">%s</div>
    <p>The code is valid for 10 minutes. If you didn't request this, please ignore this email.</p>
    <p>Never share this code with anyone.</p>
  </div>
  <div class="footer"><p>This is an automated email. Please do not reply.</p></div>
</div>
</body>
</html>`
