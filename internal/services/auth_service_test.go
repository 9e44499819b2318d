package services_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(e *env) *services.AuthService {
	return services.NewAuthService(e.db, e.tokens, e.otp, e.notifications)
}

func customerSignup(email, phone string) *dto.RegisterCustomerRequest {
	return &dto.RegisterCustomerRequest{AccountFields: dto.AccountFields{
		Name:        "Asha",
		Email:       email,
		Password:    "s3cretpass",
		Phone:       phone,
		DoorNo:      "12-3",
		AddressLine: "Road No. 1",
		City:        "Hyderabad",
		State:       "Telangana",
		Pincode:     500034,
	}}
}

func TestRegisterVerifyLogin(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	resp, err := auth.RegisterCustomer(ctx, customerSignup("asha@example.com", "9000000010"))
	require.NoError(t, err)
	assert.False(t, resp.EmailVerified)
	assert.Equal(t, models.RoleCustomer, resp.Role)

	msg, ok := e.outbox.Last("asha@example.com")
	require.True(t, ok)
	assert.Equal(t, "ServiceSpot - Verify Your Email", msg.Subject)

	admin := e.pusher.To(adminEmail)
	require.Len(t, admin, 1)
	assert.Equal(t, "NEW_CUSTOMER_REGISTERED", admin[0].Type)

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, services.ErrEmailNotVerified)

	_, err = auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "asha@example.com", OTP: "000000x"})
	assert.ErrorIs(t, err, services.ErrInvalidOTP)

	verified, err := auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "asha@example.com", OTP: issuedCode(t, e, "asha@example.com")})
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	login, err := auth.Login(ctx, &dto.LoginRequest{Email: "ASHA@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	_, err := auth.RegisterCustomer(ctx, customerSignup("asha@example.com", "9000000010"))
	require.NoError(t, err)

	_, err = auth.RegisterCustomer(ctx, customerSignup("Asha@example.com", "9000000011"))
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	_, err = auth.RegisterProvider(ctx, &dto.RegisterProviderRequest{
		AccountFields: customerSignup("ravi@example.com", "9000000010").AccountFields,
		ServiceType:   "Electrician",
	})
	assert.ErrorIs(t, err, services.ErrPhoneTaken)
}

func TestLoginFallsBackToProvider(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	_, err := auth.RegisterProvider(ctx, &dto.RegisterProviderRequest{
		AccountFields: customerSignup("ravi@example.com", "9000000020").AccountFields,
		ServiceType:   "Electrician",
		Price:         300,
	})
	require.NoError(t, err)
	assert.Equal(t, "NEW_PROVIDER_REGISTERED", e.pusher.To(adminEmail)[0].Type)

	_, err = auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "ravi@example.com", OTP: issuedCode(t, e, "ravi@example.com")})
	require.NoError(t, err)

	login, err := auth.Login(ctx, &dto.LoginRequest{Email: "ravi@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, login.Role)
}

func TestPasswordResetFlow(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()

	_, err := auth.RegisterCustomer(ctx, customerSignup("asha@example.com", "9000000010"))
	require.NoError(t, err)
	_, err = auth.VerifyEmail(ctx, &dto.VerifyEmailRequest{Email: "asha@example.com", OTP: issuedCode(t, e, "asha@example.com")})
	require.NoError(t, err)
	login, err := auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	err = auth.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, services.ErrAccountNotFound)

	require.NoError(t, auth.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Email: "asha@example.com"}))
	var otp models.OTP
	require.NoError(t, e.db.Where("email = ? AND otp_type = ?", "asha@example.com", models.OTPTypePasswordReset).First(&otp).Error)

	require.NoError(t, auth.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Email: "asha@example.com", OTP: otp.Code, NewPassword: "an0ther-pass",
	}))

	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "an0ther-pass"})
	require.NoError(t, err)

	_, err = auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestRefreshRotatesToken(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()
	createCustomer(t, e.db, "Asha", "asha@example.com", "9000000010")

	var c models.Customer
	require.NoError(t, e.db.First(&c, "email = ?", "asha@example.com").Error)
	require.NoError(t, e.db.Model(&c).Update("password", mustHash(t, "s3cretpass")).Error)

	login, err := auth.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	next, err := auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, next.RefreshToken)

	_, err = auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	require.NoError(t, auth.Logout(ctx, &dto.LogoutRequest{RefreshToken: next.RefreshToken}))
	_, err = auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: next.RefreshToken})
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestResendOTP(t *testing.T) {
	e := newEnv(t)
	auth := newAuth(e)
	ctx := context.Background()
	createCustomer(t, e.db, "Asha", "asha@example.com", "9000000010")

	err := auth.ResendOTP(ctx, &dto.ResendOTPRequest{Email: "asha@example.com", OTPType: models.OTPTypeRegistration})
	assert.ErrorIs(t, err, services.ErrAlreadyVerified)

	require.NoError(t, auth.ResendOTP(ctx, &dto.ResendOTPRequest{Email: "asha@example.com", OTPType: models.OTPTypePasswordReset}))
	_, ok := e.outbox.Last("asha@example.com")
	assert.True(t, ok)
}
