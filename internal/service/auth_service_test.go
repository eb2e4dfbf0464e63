package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dhruvina99/sevarthi-api/internal/models"
	appErrors "github.com/Dhruvina99/sevarthi-api/pkg/errors"
)

func newAuthServiceForTest(members *fakeMemberRepo) *AuthService {
	svc := NewAuthService(members, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "sevarthi-test",
	})
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func authMembers() *fakeMemberRepo {
	email := "Asha@Example.com"
	mobile := "+91 98765-43210"
	adminEmail := "admin@example.com"
	return &fakeMemberRepo{members: []models.Member{
		{ID: "m1", MhtID: "MHT001", Name: "Asha", Email: &email, Mobile: &mobile},
		{ID: "m2", MhtID: "MHT002", Name: "Chirag", Email: &adminEmail, IsAdmin: true},
		{ID: "m3", MhtID: "MHT003", Name: "Dev"},
	}}
}

func TestAuthServiceLoginByEmail(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())

	resp, err := svc.Login(context.Background(), models.LoginRequest{MhtID: " MHT001 ", Identifier: "asha@example.COM"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "m1", resp.Member.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "m1", claims.MemberID)
	assert.Equal(t, "MHT001", claims.MhtID)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.Equal(t, "sevarthi-test", claims.Issuer)
}

func TestAuthServiceLoginByMobileIgnoresFormatting(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())

	resp, err := svc.Login(context.Background(), models.LoginRequest{MhtID: "MHT001", Identifier: "919876543210"})
	require.NoError(t, err)
	assert.Equal(t, "m1", resp.Member.ID)
}

func TestAuthServiceLoginAdminRole(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())

	resp, err := svc.Login(context.Background(), models.LoginRequest{MhtID: "MHT002", Identifier: "admin@example.com"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestAuthServiceLoginRejected(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())

	cases := []struct {
		name string
		req  models.LoginRequest
		code string
	}{
		{name: "missing identifier", req: models.LoginRequest{MhtID: "MHT001"}, code: appErrors.ErrValidation.Code},
		{name: "unknown mht id", req: models.LoginRequest{MhtID: "MHT999", Identifier: "asha@example.com"}, code: appErrors.ErrInvalidCredentials.Code},
		{name: "wrong contact", req: models.LoginRequest{MhtID: "MHT001", Identifier: "other@example.com"}, code: appErrors.ErrInvalidCredentials.Code},
		{name: "no digits", req: models.LoginRequest{MhtID: "MHT001", Identifier: "+-- --"}, code: appErrors.ErrInvalidCredentials.Code},
		{name: "member without contacts", req: models.LoginRequest{MhtID: "MHT003", Identifier: "dev@example.com"}, code: appErrors.ErrInvalidCredentials.Code},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, appErrors.HasCode(err, tc.code), err.Error())
		})
	}
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())
	resp, err := svc.Login(context.Background(), models.LoginRequest{MhtID: "MHT001", Identifier: "asha@example.com"})
	require.NoError(t, err)

	other := newAuthServiceForTest(authMembers())
	other.config.AccessTokenSecret = "different"
	_, err = other.ValidateToken(resp.AccessToken)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))

	svc.now = func() time.Time { return time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC) }
	_, err = svc.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestAuthServiceRejectsUnexpectedSigningMethod(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, &models.JWTClaims{MemberID: "m1"})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized.Code))
}

func TestAuthServiceMe(t *testing.T) {
	svc := newAuthServiceForTest(authMembers())

	member, err := svc.Me(context.Background(), "m2")
	require.NoError(t, err)
	assert.Equal(t, "Chirag", member.Name)

	_, err = svc.Me(context.Background(), "missing")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound.Code))
}
