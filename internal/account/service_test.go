package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

type fixture struct {
	repo       *MockAccountRepository
	identities *fakeIdentities
	revoker    *recordingRevoker
	notifier   *recordingNotifier
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:       &MockAccountRepository{},
		identities: &fakeIdentities{identities: map[string]*domain.LinkedIdentity{}},
		revoker:    &recordingRevoker{},
		notifier:   &recordingNotifier{},
	}
	f.svc = NewService(f.repo, f.identities, f.revoker, fakeResets{}, f.notifier, Config{FrontClientURL: "https://shop.example/"})
	return f
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestRegister_Success(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetAccountByUsername", ctx, "kirito").Return(nil, domain.ErrAccountNotFound)
	f.repo.On("GetAccountByEmail", ctx, "kirito@example.com").Return(nil, domain.ErrAccountNotFound)
	f.repo.On("CreateAccount", ctx, mock.AnythingOfType("*domain.Account"), repository.AccountKeys{
		Username: "kirito", Email: "kirito@example.com",
	}).Return(nil)

	acc, err := f.svc.Register(ctx, RegisterInput{
		Username: " Kirito ",
		Email:    "Kirito@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kirito", acc.Username)
	assert.Equal(t, []domain.Role{domain.RoleUser}, acc.Roles)
	assert.Equal(t, int64(0), acc.Points)
	assert.Equal(t, domain.DefaultBio, acc.Bio)
	assert.NoError(t, CheckPassword(acc.PasswordHash, "correct-horse"))
	assert.Equal(t, []domain.MailType{domain.MailRegistration}, f.notifier.types())
	f.repo.AssertExpectations(t)
}

func TestRegister_DuplicateCreatesNothing(t *testing.T) {
	tests := []struct {
		name      string
		usernameF *domain.Account
		emailF    *domain.Account
	}{
		{"duplicate username", &domain.Account{ID: "other"}, nil},
		{"duplicate email", nil, &domain.Account{ID: "other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			if tt.usernameF != nil {
				f.repo.On("GetAccountByUsername", ctx, "asuna").Return(tt.usernameF, nil)
			} else {
				f.repo.On("GetAccountByUsername", ctx, "asuna").Return(nil, domain.ErrAccountNotFound)
			}
			if tt.emailF != nil {
				f.repo.On("GetAccountByEmail", ctx, "asuna@example.com").Return(tt.emailF, nil)
			} else {
				f.repo.On("GetAccountByEmail", ctx, "asuna@example.com").Return(nil, domain.ErrAccountNotFound)
			}

			_, err := f.svc.Register(ctx, RegisterInput{Username: "asuna", Email: "asuna@example.com", Password: "password123"})

			assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
			f.repo.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, f.notifier.types())
		})
	}
}

func TestRegister_StoreRaceStillDuplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("GetAccountByUsername", ctx, mock.Anything).Return(nil, domain.ErrAccountNotFound)
	f.repo.On("GetAccountByEmail", ctx, mock.Anything).Return(nil, domain.ErrAccountNotFound)
	f.repo.On("CreateAccount", ctx, mock.Anything, mock.Anything).Return(domain.ErrDuplicateAccount)

	_, err := f.svc.Register(ctx, RegisterInput{Username: "klein", Email: "k@example.com", Password: "password123"})

	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	assert.Empty(t, f.notifier.types())
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, RegisterInput{Username: "ab", Email: "a@b.c", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f.repo.On("GetAccountByUsername", ctx, mock.Anything).Return(nil, domain.ErrAccountNotFound)
	f.repo.On("GetAccountByEmail", ctx, mock.Anything).Return(nil, domain.ErrAccountNotFound)
	_, err = f.svc.Register(ctx, RegisterInput{Username: "abc", Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "Kirito", PasswordHash: mustHash(t, "password123")}

	f.repo.On("GetAccountByUsername", ctx, "kirito").Return(acc, nil)
	f.repo.On("GetAccountByUsername", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

	got, err := f.svc.Authenticate(ctx, "KIRITO", "password123")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)

	_, err = f.svc.Authenticate(ctx, "kirito", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Authenticate(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetPublicProfile_CachedAndInvalidated(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "kirito", Email: "k@example.com"}
	f.identities.identities["a1"] = &domain.LinkedIdentity{AccountID: "a1", Name: "Kirito", UUID: "secret"}
	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)

	p, err := f.svc.GetPublicProfile(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, p.Identity)
	assert.Equal(t, "Kirito", p.Identity.Name)

	_, err = f.svc.GetPublicProfile(ctx, "a1")
	require.NoError(t, err)
	f.repo.AssertNumberOfCalls(t, "GetAccountByID", 1)

	f.svc.InvalidateProfile("a1")
	_, err = f.svc.GetPublicProfile(ctx, "a1")
	require.NoError(t, err)
	f.repo.AssertNumberOfCalls(t, "GetAccountByID", 2)
}

func TestGetPrivateProfile_IncludesExternalID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.identities.identities["a1"] = &domain.LinkedIdentity{AccountID: "a1", Name: "Kirito", UUID: "mc-uuid"}
	f.repo.On("GetAccountByID", ctx, "a1").Return(&domain.Account{ID: "a1"}, nil)

	p, err := f.svc.GetPrivateProfile(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "mc-uuid", p.Identity.UUID)
}

func TestUpdate_EmailChangeRevokesSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "kirito", Email: "old@example.com"}
	newEmail := "new@example.com"

	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)
	f.repo.On("GetAccountByEmail", ctx, "new@example.com").Return(nil, domain.ErrAccountNotFound)
	f.repo.On("UpdateAccount", ctx, acc, repository.AccountKeys{Username: "kirito", Email: "new@example.com"}).Return(nil)

	got, err := f.svc.Update(ctx, "a1", UpdateInput{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, []string{"a1"}, f.revoker.revoked)
}

func TestUpdate_ProfileFieldsKeepSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "kirito", Email: "k@example.com"}
	bio := "Beater"

	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)
	f.repo.On("UpdateAccount", ctx, acc, mock.Anything).Return(nil)

	got, err := f.svc.Update(ctx, "a1", UpdateInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "Beater", got.Bio)
	assert.Empty(t, f.revoker.revoked)
}

func TestUpdate_UsernameTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	username := "Asuna"

	f.repo.On("GetAccountByID", ctx, "a1").Return(&domain.Account{ID: "a1", Username: "kirito"}, nil)
	f.repo.On("GetAccountByUsername", ctx, "asuna").Return(&domain.Account{ID: "a2"}, nil)

	_, err := f.svc.Update(ctx, "a1", UpdateInput{Username: &username})
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
	f.repo.AssertNotCalled(t, "UpdateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_PasswordNeedsCurrent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "kirito", PasswordHash: mustHash(t, "password123")}
	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)

	newPassword := "password456"
	_, err := f.svc.Update(ctx, "a1", UpdateInput{Password: &newPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	wrong := "nope-nope"
	_, err = f.svc.Update(ctx, "a1", UpdateInput{Password: &newPassword, CurrentPassword: &wrong})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestPasswordReset_Flow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Username: "kirito", Email: "k@example.com", PasswordHash: mustHash(t, "password123")}

	f.repo.On("GetAccountByEmail", ctx, "k@example.com").Return(acc, nil)
	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)
	f.repo.On("UpdatePasswordHash", ctx, "a1", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "K@example.com"))
	require.Len(t, f.notifier.mails, 1)
	mail := f.notifier.mails[0]
	assert.Equal(t, domain.MailResetPassword, mail.Type)
	assert.Contains(t, mail.Data[MailKeyResetLink], "https://shop.example/reset-password?token=")

	require.NoError(t, f.svc.ResetPassword(ctx, mail.Data[MailKeyToken], "brand-new-password"))
	assert.Equal(t, []string{"a1"}, f.revoker.revoked)
	assert.Equal(t, []domain.MailType{domain.MailResetPassword, domain.MailChangePasswordSuccess}, f.notifier.types())
}

func TestResetPassword_StaleTokenRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", PasswordHash: mustHash(t, "password123")}
	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)

	err := f.svc.ResetPassword(ctx, "a1|not-the-fingerprint", "brand-new-password")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)

	err = f.svc.ResetPassword(ctx, "garbage", "brand-new-password")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
	f.repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.repo.On("GetAccountByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrAccountNotFound)

	assert.NoError(t, f.svc.RequestPasswordReset(ctx, "ghost@example.com"))
	assert.Empty(t, f.notifier.types())
}

func TestGrantAndRevokeRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	acc := &domain.Account{ID: "a1", Roles: []domain.Role{domain.RoleUser}}
	f.repo.On("GetAccountByID", ctx, "a1").Return(acc, nil)
	f.repo.On("SetRoles", ctx, "a1", mock.Anything).Return(nil)

	got, err := f.svc.GrantRole(ctx, "a1", domain.RoleModerator)
	require.NoError(t, err)
	assert.True(t, got.HasRole(domain.RoleModerator))

	got, err = f.svc.RevokeRole(ctx, "a1", domain.RoleModerator)
	require.NoError(t, err)
	assert.False(t, got.HasRole(domain.RoleModerator))

	_, err = f.svc.GrantRole(ctx, "a1", domain.Role("king"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	f.repo.AssertNumberOfCalls(t, "SetRoles", 2)
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("École"), FoldKey("ÉCOLE"))
	assert.Equal(t, "kirito", FoldKey("  KiRiTo "))
}
