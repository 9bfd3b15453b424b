package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
	apperrors "github.com/limnolab/limno-ui-api/internal/errors"
	mocks "github.com/limnolab/limno-ui-api/internal/mocks/auth"
)

func newTestService(t *testing.T, opts SessionServiceOptions) (*SessionService, *mocks.MockAuthenticator, *mocks.MemorySessionStore) {
	t.Helper()
	auth := mocks.NewMockAuthenticator()
	sessions := mocks.NewMemorySessionStore()
	if opts.Auth == nil {
		opts.Auth = auth
	}
	if opts.Sessions == nil {
		opts.Sessions = sessions
	}
	if opts.Roles == nil {
		opts.Roles = mocks.StaticRoleMapper{AdminRole: "admin", UserRole: "usuario"}
	}
	return NewSessionService(opts), auth, sessions
}

func TestSessionService_SignIn_PersistsSessionWithBackendCookie(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})
	auth.DefaultUser.Roles = []string{"usuario"}

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "ana@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Session.ID)
	assert.Equal(t, auth.DefaultCookie, result.Session.BackendCookie)
	assert.Equal(t, []domainauth.Role{domainauth.RoleUser}, result.Session.Roles)
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_SignIn_LandingByRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		returnTo string
		want     string
	}{
		{name: "admin lands on dashboard", roles: []string{"admin"}, want: AdminLanding},
		{name: "regular user lands on data", roles: []string{"usuario"}, want: UserLanding},
		{name: "admin with both roles still lands on dashboard", roles: []string{"usuario", "admin"}, want: AdminLanding},
		{name: "recorded return path wins", roles: []string{"usuario"}, returnTo: "/profile", want: "/profile"},
		{name: "offsite return path is ignored", roles: []string{"usuario"}, returnTo: "//evil.example/x", want: UserLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, auth, _ := newTestService(t, SessionServiceOptions{})
			auth.DefaultUser.Roles = tt.roles

			result, err := svc.SignIn(context.Background(), SignInInput{
				Email:    "user@example.com",
				Password: "pw",
				ReturnTo: tt.returnTo,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.RedirectTo)
		})
	}
}

func TestSessionService_SignIn_RejectsUnrecognizedRoles(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})
	auth.DefaultUser.Roles = []string{"superintendent"}

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "x@example.com", Password: "pw"})
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionService_SignIn_PropagatesBadCredentials(t *testing.T) {
	svc, auth, _ := newTestService(t, SessionServiceOptions{})
	auth.SignInFunc = func(context.Context, string, string) (domainauth.Identity, string, error) {
		return domainauth.Identity{}, "", apperrors.Validation("incorrect email or password")
	}

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "x@example.com", Password: "bad"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSessionService_CheckStatus_EmptyIDIsUnauthenticated(t *testing.T) {
	svc, _, _ := newTestService(t, SessionServiceOptions{})

	state := svc.CheckStatus(context.Background(), "")
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.Roles)
}

func TestSessionService_CheckStatus_AuthenticatedSession(t *testing.T) {
	svc, auth, _ := newTestService(t, SessionServiceOptions{})
	auth.DefaultUser.Roles = []string{"admin"}

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)

	state := svc.CheckStatus(context.Background(), result.Session.ID)
	assert.True(t, state.IsAuthenticated)
	assert.Equal(t, []domainauth.Role{domainauth.RoleAdmin}, state.Roles)
	assert.Equal(t, auth.DefaultUser.UserID, state.UserID)
}

func TestSessionService_CheckStatus_RevokedUpstreamDeletesSession(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	auth.StatusFunc = func(context.Context, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.Unauthorized("session expired")
	}

	state := svc.CheckStatus(context.Background(), result.Session.ID)
	assert.False(t, state.IsAuthenticated)
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionService_CheckStatus_TransportFailureFailsClosed(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	auth.StatusFunc = func(context.Context, string) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.Upstream("connection refused")
	}

	state := svc.CheckStatus(context.Background(), result.Session.ID)
	assert.False(t, state.IsAuthenticated)
	// Transient upstream failure does not destroy the session itself.
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_CheckStatus_CoalescesConcurrentChecks(t *testing.T) {
	svc, auth, _ := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	release := make(chan struct{})
	auth.StatusFunc = func(context.Context, string) (domainauth.Identity, error) {
		<-release
		return auth.DefaultUser, nil
	}

	const workers = 16
	var wg sync.WaitGroup
	states := make([]domainauth.State, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			states[i] = svc.CheckStatus(context.Background(), result.Session.ID)
		}(i)
	}

	// Give the goroutines time to pile up on the in-flight check.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, st := range states {
		assert.True(t, st.IsAuthenticated)
	}
	assert.Equal(t, 1, auth.StatusCalls())
}

func TestSessionService_CheckStatus_RefreshesRolesFromBackend(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})
	auth.DefaultUser.Roles = []string{"usuario"}

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	auth.DefaultUser.Roles = []string{"admin"}

	state := svc.CheckStatus(context.Background(), result.Session.ID)
	require.True(t, state.IsAuthenticated)
	assert.Equal(t, []domainauth.Role{domainauth.RoleAdmin}, state.Roles)

	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, []domainauth.Role{domainauth.RoleAdmin}, stored.Roles)
}

func TestSessionService_GetSession_ExpiredIsCleanedUp(t *testing.T) {
	svc, _, sessions := newTestService(t, SessionServiceOptions{})

	sess := domainauth.Session{
		ID:        "expired",
		UserID:    "1",
		Roles:     []domainauth.Role{domainauth.RoleUser},
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessions.Save(context.Background(), sess))

	_, err := svc.GetSession(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSessionExpired))
	assert.Equal(t, 0, sessions.Len())
}

func TestSessionService_SignOut_RemovesLocalSession(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background(), result.Session.ID))
	assert.Equal(t, 0, sessions.Len())
	assert.Equal(t, 1, auth.SignOutCalls())
}

func TestSessionService_SignOut_BackendFailureKeepsLocalSession(t *testing.T) {
	svc, auth, sessions := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	auth.SignOutFunc = func(context.Context, string) error {
		return apperrors.Upstream("backend unavailable")
	}

	// A failed backend sign-out must propagate and leave the local session
	// alone; deleting it would desynchronize the two sides.
	err = svc.SignOut(context.Background(), result.Session.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstream(err))
	assert.Equal(t, 1, sessions.Len())
}

func TestSessionService_Invalidate(t *testing.T) {
	svc, _, sessions := newTestService(t, SessionServiceOptions{})

	result, err := svc.SignIn(context.Background(), SignInInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(context.Background(), result.Session.ID))
	assert.Equal(t, 0, sessions.Len())

	state := svc.CheckStatus(context.Background(), result.Session.ID)
	assert.False(t, state.IsAuthenticated)
}

func TestSessionService_Run_CountsUnauthorizedSignals(t *testing.T) {
	signals := make(chan struct{}, 1)
	svc, _, _ := newTestService(t, SessionServiceOptions{Unauthorized: signals})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	signals <- struct{}{}
	assert.Eventually(t, func() bool {
		return svc.RejectionCount() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestSessionService_CompleteSSO_SessionWithoutBackendCookie(t *testing.T) {
	sso := mocks.NewMockSSOProvider()
	sso.DefaultUser.Roles = []string{"admin"}
	svc, _, sessions := newTestService(t, SessionServiceOptions{SSO: sso})

	result, err := svc.CompleteSSO(context.Background(), CompleteSSOInput{
		Code:  "code",
		State: "state-1",
		Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Session.BackendCookie)
	assert.Equal(t, AdminLanding, result.RedirectTo)
	assert.Equal(t, 1, sessions.Len())

	// No backend cookie means status resolves from the local session alone.
	state := svc.CheckStatus(context.Background(), result.Session.ID)
	assert.True(t, state.IsAuthenticated)
}
