package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/blend/internal/domain/user"
	"github.com/xiebiao/blend/internal/domain/verification"
	apperrors "github.com/xiebiao/blend/pkg/errors"
	"github.com/xiebiao/blend/pkg/jwt"
)

const (
	msgRegistered = "Registration successful. Please check your email for verification code."
	msgResent     = "Verification code has been resent to your email."
	msgVerified   = "Email verified successfully"
)

// RegisterUseCase creates an unverified account and mails its first code.
type RegisterUseCase struct {
	userService user.Service
	codeRepo    verification.Repository
	notifier    Notifier
	log         *zap.Logger
}

func NewRegisterUseCase(
	userService user.Service,
	codeRepo verification.Repository,
	notifier Notifier,
	log *zap.Logger,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		codeRepo:    codeRepo,
		notifier:    notifier,
		log:         log,
	}
}

type RegisterRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. nothing is written on a mismatch
	if req.Password != req.ConfirmPassword {
		return nil, user.ErrPasswordMismatch
	}

	// 2. account
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		return nil, err
	}

	// 3. code
	if err := issueCode(ctx, uc.codeRepo, uc.notifier, uc.log, u); err != nil {
		return nil, err
	}

	return &RegisterResponse{UserID: u.ID, Message: msgRegistered}, nil
}

// issueCode replaces the user's codes with a fresh one and mails it. A mail
// failure is returned; the stored code stays valid for a later resend.
func issueCode(ctx context.Context, codes verification.Repository, notifier Notifier, log *zap.Logger, u *user.User) error {
	if err := codes.DeleteByUserID(ctx, u.ID); err != nil {
		return err
	}
	c, err := verification.NewCode(u.ID, time.Now())
	if err != nil {
		return err
	}
	if err := codes.Create(ctx, c); err != nil {
		return err
	}
	minutes := int(verification.CodeTTL / time.Minute)
	if err := notifier.SendVerification(ctx, u.Email, u.FirstName, c.Code, minutes); err != nil {
		log.Warn("verification email not delivered", zap.String("user_id", u.ID), zap.Error(err))
		return mailFailed(err, "verification")
	}
	return nil
}

// VerifyEmailUseCase confirms an email with its code and signs the user in.
type VerifyEmailUseCase struct {
	userRepo user.Repository
	codeRepo verification.Repository
	notifier Notifier
	tokens   *jwt.Manager
	log      *zap.Logger
	now      func() time.Time
}

func NewVerifyEmailUseCase(
	userRepo user.Repository,
	codeRepo verification.Repository,
	notifier Notifier,
	tokens *jwt.Manager,
	log *zap.Logger,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo: userRepo,
		codeRepo: codeRepo,
		notifier: notifier,
		tokens:   tokens,
		log:      log,
		now:      time.Now,
	}
}

type VerifyEmailRequest struct {
	Email string
	Code  string
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, req VerifyEmailRequest) (*AuthResponse, error) {
	// 1. unverified user
	u, err := findUnverified(ctx, uc.userRepo, req.Email)
	if err != nil {
		return nil, err
	}

	// 2. matching, live code
	c, err := uc.codeRepo.FindByUserAndCode(ctx, u.ID, req.Code)
	if err != nil {
		return nil, err
	}
	if c.IsExpired(uc.now()) {
		return nil, verification.ErrCodeExpired
	}

	// 3. verify and burn every code
	if err := u.Verify(); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.codeRepo.DeleteByUserID(ctx, u.ID); err != nil {
		return nil, err
	}

	// 4. greet
	if err := uc.notifier.SendWelcome(ctx, u.Email, u.FirstName); err != nil {
		uc.log.Warn("welcome email not delivered", zap.String("user_id", u.ID), zap.Error(err))
		return nil, mailFailed(err, "welcome")
	}

	return issue(uc.tokens, u, msgVerified)
}

// ResendCodeUseCase issues a new code to an unverified user.
type ResendCodeUseCase struct {
	userRepo user.Repository
	codeRepo verification.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewResendCodeUseCase(
	userRepo user.Repository,
	codeRepo verification.Repository,
	notifier Notifier,
	log *zap.Logger,
) *ResendCodeUseCase {
	return &ResendCodeUseCase{
		userRepo: userRepo,
		codeRepo: codeRepo,
		notifier: notifier,
		log:      log,
	}
}

func (uc *ResendCodeUseCase) Execute(ctx context.Context, email string) (*MessageResponse, error) {
	u, err := findUnverified(ctx, uc.userRepo, email)
	if err != nil {
		return nil, err
	}
	if err := issueCode(ctx, uc.codeRepo, uc.notifier, uc.log, u); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: msgResent}, nil
}

func mailFailed(err error, template string) *apperrors.AppError {
	appErr := apperrors.Wrapf(err, "Failed to send %s email", template)
	appErr.Code = apperrors.ErrCodeMailError
	return appErr
}

func findUnverified(ctx context.Context, repo user.Repository, email string) (*user.User, error) {
	u, err := repo.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u.IsVerified {
		return nil, user.ErrAlreadyVerified
	}
	return u, nil
}
