package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/domain"
	"github.com/membergate/backend/internal/queue/task"
	"github.com/membergate/backend/pkg/auth"
	"github.com/membergate/backend/pkg/hash"
	"github.com/membergate/backend/pkg/otp"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	svc      *authService
	users    *usersRepoMock
	sessions *sessionStoreMock
	queue    *enqueuerMock
	hasher   hash.Hasher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := new(usersRepoMock)
	sessions := new(sessionStoreMock)
	queue := new(enqueuerMock)
	hasher := hash.NewBcryptHasher(4)

	tokenManager, err := auth.NewManager(config.JWTConfig{
		AccessTokenTTL: time.Hour,
		SigningKey:     "test-signing-key",
	})
	require.NoError(t, err)

	svc := newAuthService(users, sessions, hasher, tokenManager,
		otp.NewNumericGenerator(), queue, zap.NewNop(), testConfig())

	return &authFixture{svc: svc, users: users, sessions: sessions, queue: queue, hasher: hasher}
}

func acceptedUser(t *testing.T, hasher hash.Hasher, plain string) *domain.User {
	t.Helper()

	digest, err := hasher.Hash(plain)
	require.NoError(t, err)

	user := pendingUser()
	user.Status = domain.StatusAccepted
	user.Username = sql.NullString{String: "John4567", Valid: true}
	user.PasswordHash = sql.NullString{String: digest, Valid: true}
	return user
}

func TestSignUp(t *testing.T) {
	f := newAuthFixture(t)
	input := SignUpInput{Name: "Johnathan", Mobile: "5551234567", Email: "johnathan@example.com"}

	f.users.On("GetByEmail", mock.Anything, input.Email).Return(nil, domain.ErrNotFound)
	f.users.On("GetByMobile", mock.Anything, input.Mobile).Return(nil, domain.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	f.users.On("GetByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(pendingUser(), nil)
	f.queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.SignUp(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, created.Status)
	require.False(t, created.Username.Valid)

	for _, call := range f.users.Calls {
		if call.Method == "Create" {
			stored := call.Arguments.Get(1).(*domain.User)
			require.True(t, stored.EmailVerified)
			require.Equal(t, domain.StatusPending, stored.Status)
			require.False(t, stored.PasswordHash.Valid)
		}
	}

	sent := f.queue.tasksOfType(task.SendEmailTaskName)
	require.Len(t, sent, 1)
	require.Equal(t, task.EmailKindWelcome, decodeEmailTask(t, sent[0].Payload()).Kind)
}

func TestSignUpEmailTaken(t *testing.T) {
	f := newAuthFixture(t)
	input := SignUpInput{Name: "Johnathan", Mobile: "5551234567", Email: "johnathan@example.com"}

	f.users.On("GetByEmail", mock.Anything, input.Email).Return(pendingUser(), nil)

	_, err := f.svc.SignUp(context.Background(), input)
	require.ErrorIs(t, err, ErrEmailTaken)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignUpMobileTaken(t *testing.T) {
	f := newAuthFixture(t)
	input := SignUpInput{Name: "Johnathan", Mobile: "5551234567", Email: "johnathan@example.com"}

	f.users.On("GetByEmail", mock.Anything, input.Email).Return(nil, domain.ErrNotFound)
	f.users.On("GetByMobile", mock.Anything, input.Mobile).Return(pendingUser(), nil)

	_, err := f.svc.SignUp(context.Background(), input)
	require.ErrorIs(t, err, ErrMobileTaken)
}

// A welcome mail that cannot be queued must not fail the registration.
func TestSignUpEnqueueFailureSwallowed(t *testing.T) {
	f := newAuthFixture(t)
	input := SignUpInput{Name: "Johnathan", Mobile: "5551234567", Email: "johnathan@example.com"}

	f.users.On("GetByEmail", mock.Anything, input.Email).Return(nil, domain.ErrNotFound)
	f.users.On("GetByMobile", mock.Anything, input.Mobile).Return(nil, domain.ErrNotFound)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, mock.Anything).Return(pendingUser(), nil)
	f.queue.On("Enqueue", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.svc.SignUp(context.Background(), input)
	require.NoError(t, err)
}

func TestSignIn(t *testing.T) {
	f := newAuthFixture(t)
	user := acceptedUser(t, f.hasher, "Secret1!")

	f.users.On("GetByUsername", mock.Anything, "John4567").Return(user, nil)
	f.sessions.On("Create", mock.Anything, mock.AnythingOfType("string"), user.ID).Return(nil)

	tokens, err := f.svc.SignIn(context.Background(), "John4567", "Secret1!")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.Equal(t, user.ID, tokens.Identity)
	f.sessions.AssertCalled(t, "Create", mock.Anything, tokens.AccessToken, user.ID)
}

// Login may also be an email or mobile number.
func TestSignInByEmailFallback(t *testing.T) {
	f := newAuthFixture(t)
	user := acceptedUser(t, f.hasher, "Secret1!")

	f.users.On("GetByUsername", mock.Anything, user.Email).Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	f.sessions.On("Create", mock.Anything, mock.Anything, user.ID).Return(nil)

	tokens, err := f.svc.SignIn(context.Background(), user.Email, "Secret1!")
	require.NoError(t, err)
	require.Equal(t, user.ID, tokens.Identity)
}

func TestSignInWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := acceptedUser(t, f.hasher, "Secret1!")

	f.users.On("GetByUsername", mock.Anything, "John4567").Return(user, nil)

	_, err := f.svc.SignIn(context.Background(), "John4567", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	f.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// A Pending applicant has no credentials yet and cannot log in.
func TestSignInPasswordNotSet(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()

	f.users.On("GetByUsername", mock.Anything, user.Email).Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := f.svc.SignIn(context.Background(), user.Email, "anything")
	require.ErrorIs(t, err, ErrPasswordNotSet)
}

func TestSignInUnknownLogin(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	f.users.On("GetByEmail", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)
	f.users.On("GetByMobile", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := f.svc.SignIn(context.Background(), "ghost", "anything")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePasswordMismatch(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ChangePassword(context.Background(), uuid.New(), ChangePasswordInput{
		NewPassword:     "Secret1!",
		ConfirmPassword: "Secret2!",
	})
	require.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestChangePasswordWeak(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.ChangePassword(context.Background(), uuid.New(), ChangePasswordInput{
		NewPassword:     "alllowercase",
		ConfirmPassword: "alllowercase",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	id := uuid.New()

	f.users.On("UpdatePassword", mock.Anything, id, mock.AnythingOfType("string")).Return(nil)

	err := f.svc.ChangePassword(context.Background(), id, ChangePasswordInput{
		NewPassword:     "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.NoError(t, err)

	var storedHash string
	for _, call := range f.users.Calls {
		if call.Method == "UpdatePassword" {
			storedHash = call.Arguments.String(2)
		}
	}
	require.True(t, f.hasher.Verify(storedHash, "Secret1!"))
}

func TestForgotThenResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()

	f.users.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	f.users.On("StoreOTP", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)
	f.queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), user.Email))

	var code string
	for _, call := range f.users.Calls {
		if call.Method == "StoreOTP" {
			code = call.Arguments.String(2)
		}
	}
	require.Len(t, code, 6)

	sent := f.queue.tasksOfType(task.SendEmailTaskName)
	require.Len(t, sent, 1)
	payload := decodeEmailTask(t, sent[0].Payload())
	require.Equal(t, task.EmailKindOTP, payload.Kind)
	require.Equal(t, code, payload.Bindings["otp"])

	user.OTP = sql.NullString{String: code, Valid: true}
	user.OTPCreatedAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}

	f.users.On("GetByOTP", mock.Anything, code).Return(user, nil)
	f.users.On("UpdatePassword", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)
	f.users.On("ClearOTP", mock.Anything, user.ID).Return(nil)

	err := f.svc.ResetPassword(context.Background(), ResetPasswordInput{
		OTP:             code,
		NewPassword:     "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.NoError(t, err)
	f.users.AssertCalled(t, "ClearOTP", mock.Anything, user.ID)
}

func TestResetPasswordExpiredOTP(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()
	user.OTP = sql.NullString{String: "123456", Valid: true}
	user.OTPCreatedAt = sql.NullTime{Time: time.Now().UTC().Add(-16 * time.Minute), Valid: true}

	f.users.On("GetByOTP", mock.Anything, "123456").Return(user, nil)

	err := f.svc.ResetPassword(context.Background(), ResetPasswordInput{
		OTP:             "123456",
		NewPassword:     "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.ErrorIs(t, err, ErrInvalidOTP)
	f.users.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPasswordUnknownOTP(t *testing.T) {
	f := newAuthFixture(t)

	f.users.On("GetByOTP", mock.Anything, "000000").Return(nil, domain.ErrNotFound)

	err := f.svc.ResetPassword(context.Background(), ResetPasswordInput{
		OTP:             "000000",
		NewPassword:     "Secret1!",
		ConfirmPassword: "Secret1!",
	})
	require.ErrorIs(t, err, ErrInvalidOTP)
}

func TestCompletePayment(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()

	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("SetPaid", mock.Anything, user.ID).Return(nil)
	f.queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.CompletePayment(context.Background(), user.ID))

	sent := f.queue.tasksOfType(task.SendEmailTaskName)
	require.Len(t, sent, 1)
	payload := decodeEmailTask(t, sent[0].Payload())
	require.Equal(t, task.EmailKindPaymentNotification, payload.Kind)
	require.Equal(t, []string{"approvals@membergate.io"}, payload.To)
	require.Equal(t, user.Email, payload.Bindings["email"])
}

// Confirming payment twice re-marks and re-notifies each time.
func TestCompletePaymentReplayRenotifies(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()
	user.Paid = true

	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.users.On("SetPaid", mock.Anything, user.ID).Return(nil)
	f.queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.svc.CompletePayment(context.Background(), user.ID))
	require.NoError(t, f.svc.CompletePayment(context.Background(), user.ID))

	f.users.AssertNumberOfCalls(t, "SetPaid", 2)
	require.Len(t, f.queue.tasksOfType(task.SendEmailTaskName), 2)
}

func TestPaymentInfo(t *testing.T) {
	f := newAuthFixture(t)
	user := pendingUser()

	f.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	info, err := f.svc.PaymentInfo(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "upi://pay?pa=merchant@upi&pn=MemberGate&am=4999", info.PaymentURI)
	require.Equal(t, "4999", info.Amount)
	require.Equal(t, user.ID, info.User.ID)
}
