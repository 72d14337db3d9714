package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/query"
	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/internal/domain/verification"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/jwt"
)

type memUsers struct {
	byID map[string]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*user.User{}}
}

func (r *memUsers) Create(_ context.Context, u *user.User) error {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.ID = "u-" + u.Email
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, user.ErrNotFound
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *memUsers) FindByGoogleID(_ context.Context, googleID string) (*user.User, error) {
	for _, u := range r.byID {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *memUsers) List(_ context.Context, _ query.Page) ([]*user.User, int64, error) {
	return nil, 0, nil
}

func (r *memUsers) Update(_ context.Context, u *user.User) error {
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

type memCodes struct {
	codes []*verification.Code
}

func (r *memCodes) Create(_ context.Context, c *verification.Code) error {
	r.codes = append(r.codes, c)
	return nil
}

func (r *memCodes) FindByUserAndCode(_ context.Context, userID, code string) (*verification.Code, error) {
	for _, c := range r.codes {
		if c.UserID == userID && c.Code == code {
			return c, nil
		}
	}
	return nil, verification.ErrInvalidCode
}

func (r *memCodes) DeleteByUserID(_ context.Context, userID string) error {
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return nil
}

type outbox struct {
	codes       []string
	welcomed    []string
	fail        bool
	failWelcome bool
}

func (o *outbox) SendVerification(_ context.Context, _, _, code string, minutes int) error {
	if o.fail {
		return errors.New("smtp down")
	}
	o.codes = append(o.codes, code)
	return nil
}

func (o *outbox) SendWelcome(_ context.Context, to, _ string) error {
	if o.failWelcome {
		return errors.New("smtp down")
	}
	o.welcomed = append(o.welcomed, to)
	return nil
}

type env struct {
	users    *memUsers
	codes    *memCodes
	mail     *outbox
	tokens   *jwt.Manager
	register *RegisterUseCase
	verify   *VerifyEmailUseCase
	resend   *ResendCodeUseCase
	login    *LoginUseCase
}

func newEnv() *env {
	users := newMemUsers()
	codes := &memCodes{}
	mail := &outbox{}
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := user.NewService(users)
	log := zap.NewNop()
	return &env{
		users:    users,
		codes:    codes,
		mail:     mail,
		tokens:   tokens,
		register: NewRegisterUseCase(svc, codes, mail, log),
		verify:   NewVerifyEmailUseCase(users, codes, mail, tokens, log),
		resend:   NewResendCodeUseCase(users, codes, mail, log),
		login:    NewLoginUseCase(svc, tokens),
	}
}

func registration() RegisterRequest {
	return RegisterRequest{
		Email:           "Ann@Example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Ann",
		LastName:        "Lee",
		Phone:           "+37493000000",
	}
}

func TestRegisterVerifyLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	reg, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)
	assert.Equal(t, msgRegistered, reg.Message)
	require.Len(t, e.mail.codes, 1)

	_, err = e.login.Execute(ctx, LoginRequest{Email: "ann@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrNotVerified)

	_, err = e.verify.Execute(ctx, VerifyEmailRequest{Email: "ann@example.com", Code: "000000"})
	assert.ErrorIs(t, err, verification.ErrInvalidCode)

	resp, err := e.verify.Execute(ctx, VerifyEmailRequest{Email: "ANN@example.com", Code: e.mail.codes[0]})
	require.NoError(t, err)
	assert.True(t, resp.User.IsVerified)
	assert.Equal(t, []string{"ann@example.com"}, e.mail.welcomed)
	assert.Empty(t, e.codes.codes, "codes are burned")

	claims, err := e.tokens.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID())
	assert.Equal(t, jwt.RoleUser, claims.Role)

	_, err = e.verify.Execute(ctx, VerifyEmailRequest{Email: "ann@example.com", Code: e.mail.codes[0]})
	assert.ErrorIs(t, err, user.ErrAlreadyVerified)

	logged, err := e.login.Execute(ctx, LoginRequest{Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", logged.User.FirstName)

	_, err = e.login.Execute(ctx, LoginRequest{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRegisterRejections(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	req := registration()
	req.ConfirmPassword = "other"
	_, err := e.register.Execute(ctx, req)
	assert.ErrorIs(t, err, user.ErrPasswordMismatch)
	assert.Empty(t, e.users.byID, "mismatch writes nothing")

	_, err = e.register.Execute(ctx, registration())
	require.NoError(t, err)

	dup := registration()
	dup.Email = "ANN@EXAMPLE.COM"
	_, err = e.register.Execute(ctx, dup)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeEmailDuplicate))
	assert.Equal(t, 409, apperrors.HTTPStatus(apperrors.GetAppError(err).Code))
}

func TestMailFailurePropagates(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mail.fail = true

	_, err := e.register.Execute(ctx, registration())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMailError))
	assert.Equal(t, "Failed to send verification email", apperrors.GetAppError(err).Message)
	assert.Equal(t, 500, apperrors.HTTPStatus(apperrors.GetAppError(err).Code))
	assert.Len(t, e.codes.codes, 1, "the stored code can be resent")

	_, err = e.resend.Execute(ctx, "ann@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMailError))

	e.mail.fail = false
	_, err = e.resend.Execute(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Len(t, e.mail.codes, 1)

	e.mail.failWelcome = true
	_, err = e.verify.Execute(ctx, VerifyEmailRequest{Email: "ann@example.com", Code: e.mail.codes[0]})
	require.Error(t, err)
	assert.Equal(t, "Failed to send welcome email", apperrors.GetAppError(err).Message)
}

func TestExpiredCode(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)

	e.verify.now = func() time.Time { return time.Now().Add(verification.CodeTTL + time.Minute) }
	_, err = e.verify.Execute(ctx, VerifyEmailRequest{Email: "ann@example.com", Code: e.mail.codes[0]})
	assert.ErrorIs(t, err, verification.ErrCodeExpired)
}

func TestResendReplacesCode(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)

	resp, err := e.resend.Execute(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, msgResent, resp.Message)
	require.Len(t, e.mail.codes, 2)
	require.Len(t, e.codes.codes, 1)
	assert.Equal(t, e.mail.codes[1], e.codes.codes[0].Code)

	_, err = e.resend.Execute(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

type fakeGoogle struct {
	profile user.GoogleProfile
}

func (f fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f fakeGoogle) Exchange(_ context.Context, code string) (*user.GoogleProfile, error) {
	if code != "good" {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "Google authentication failed")
	}
	p := f.profile
	return &p, nil
}

func TestGoogleLoginLinksExistingAccount(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.register.Execute(ctx, registration())
	require.NoError(t, err)

	uc := NewGoogleLoginUseCase(fakeGoogle{profile: user.GoogleProfile{
		GoogleID: "g-1", Email: "ann@example.com", FirstName: "Ann",
	}}, user.NewService(e.users), e.tokens)

	assert.Contains(t, uc.ConsentURL("xyz"), "state=xyz")

	resp, err := uc.Execute(ctx, "good")
	require.NoError(t, err)
	assert.True(t, resp.User.IsVerified)
	assert.Len(t, e.users.byID, 1)

	_, err = uc.Execute(ctx, "bad")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthorized))
}

type blacklist struct {
	ttl time.Duration
}

func (b *blacklist) Revoke(_ context.Context, _ string, ttl time.Duration) error {
	b.ttl = ttl
	return nil
}

func TestLogout(t *testing.T) {
	tokens := jwt.NewManager("test-secret", time.Hour)
	token, err := tokens.GenerateToken("u1", "a@b.c", jwt.RoleUser)
	require.NoError(t, err)
	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)

	bl := &blacklist{}
	_, err = NewLogoutUseCase(bl, zap.NewNop()).Execute(context.Background(), token, claims)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), bl.ttl.Seconds(), 5)

	_, err = NewLogoutUseCase(nil, zap.NewNop()).Execute(context.Background(), token, claims)
	assert.NoError(t, err)
}
