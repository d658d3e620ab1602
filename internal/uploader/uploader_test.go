package uploader_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"texsync/internal/domain"
	"texsync/internal/logger"
	"texsync/internal/session"
	"texsync/internal/uploader"
	"texsync/testutils"
)

const (
	destinationURL = "https://contoso.sharepoint.com/sites/docs/Shared%20Documents"

	emailSelector    = `//input[@type='email']`
	passwordSelector = `//input[@type='password']`
	submitSelector   = `//input[@type='submit']`

	uploadIconSelector  = `//i[@data-icon-name='upload']`
	filesOptionSelector = `//li[@role='presentation']//span[contains(text(),'Files')]`
	uploadedSelector    = `//div[contains(text(),'Uploaded')]`
)

// fixture bundles an uploader wired to fakes and a seeded cookie store.
type fixture struct {
	uploader *uploader.Uploader
	launcher *testutils.FakeLauncher
	session  *testutils.FakeSession
	page     *testutils.FakePage
	store    *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := session.NewStore(filepath.Join(t.TempDir(), "cookies.json"), logger.NewNoOp())
	require.NoError(t, store.Save([]session.Cookie{
		{Name: "FedAuth", Value: "seed", Domain: "contoso.sharepoint.com", Path: "/"},
	}))

	page := &testutils.FakePage{}
	sess := &testutils.FakeSession{
		Page: page,
		CookieJar: []session.Cookie{
			{Name: "FedAuth", Value: "renewed", Domain: "contoso.sharepoint.com", Path: "/"},
			{Name: "rtFa", Value: "fresh", Domain: ".sharepoint.com", Path: "/"},
		},
	}
	launcher := &testutils.FakeLauncher{Session: sess}

	u := uploader.New(
		launcher,
		store,
		uploader.Config{DestinationURL: destinationURL, TempDir: t.TempDir()},
		uploader.Credentials{Username: "user@contoso.com", Password: "hunter2"},
		logger.NewNoOp(),
	)
	uploader.SetClock(u, func() time.Time { return time.Unix(1700000000, 0) })

	return &fixture{
		uploader: u,
		launcher: launcher,
		session:  sess,
		page:     page,
		store:    store,
	}
}

func testDocument() *domain.Document {
	return &domain.Document{Name: "proj.pdf", Data: []byte("%PDF-1.7 content")}
}

func TestUploader_UploadWithValidSession(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	err := fx.uploader.Upload(context.Background(), testDocument())
	require.NoError(t, err)

	// Cookies go into the context before the first navigation.
	require.Len(t, fx.session.Added, 1)
	assert.Equal(t, "seed", fx.session.Added[0][0].Value)
	assert.Equal(t, []string{destinationURL}, fx.page.NavigatedTo)

	// A valid session must never touch the login form.
	assert.Empty(t, fx.page.Fills)
	assert.NotContains(t, fx.page.Clicks, submitSelector)

	assert.Equal(t, []string{uploadIconSelector, filesOptionSelector}, fx.page.Clicks)
	assert.Equal(t, []string{uploadIconSelector, uploadedSelector}, fx.page.Waits)

	require.Len(t, fx.page.ChooserPaths, 1)
	assert.Equal(t, "proj-1700000000.pdf", filepath.Base(fx.page.ChooserPaths[0]))

	assert.True(t, fx.session.Closed)
}

func TestUploader_UploadRefreshesCookieStore(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	require.NoError(t, fx.uploader.Upload(context.Background(), testDocument()))

	// Even without a login, the destination may renew the session; the store
	// must hold the context's final cookie set.
	saved, err := fx.store.Load()
	require.NoError(t, err)
	assert.Equal(t, fx.session.CookieJar, saved)
}

func TestUploader_UploadMissingCookieStore(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	emptyStore := session.NewStore(filepath.Join(t.TempDir(), "missing.json"), logger.NewNoOp())

	u := uploader.New(
		fx.launcher,
		emptyStore,
		uploader.Config{DestinationURL: destinationURL},
		uploader.Credentials{},
		logger.NewNoOp(),
	)

	err := u.Upload(context.Background(), testDocument())
	require.Error(t, err)

	var storeErr *session.StoreError
	require.ErrorAs(t, err, &storeErr)

	// The precondition check must come before any browser work.
	assert.Zero(t, fx.launcher.LaunchCount)
}

func TestUploader_UploadWithExpiredSessionLogsIn(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	fx.page.VisibleSelectors = map[string]bool{
		emailSelector:    true,
		passwordSelector: true,
	}

	err := fx.uploader.Upload(context.Background(), testDocument())
	require.NoError(t, err)

	assert.Equal(t, []string{
		emailSelector + "=user@contoso.com",
		passwordSelector + "=hunter2",
	}, fx.page.Fills)

	// Each login step submits its form.
	assert.Equal(t, []string{
		submitSelector,
		submitSelector,
		uploadIconSelector,
		filesOptionSelector,
	}, fx.page.Clicks)
}

func TestUploader_LoginSkipsFilledField(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	fx.page.VisibleSelectors = map[string]bool{
		emailSelector:    true,
		passwordSelector: true,
	}
	fx.page.InputValues = map[string]string{
		emailSelector: "user@contoso.com",
	}

	err := fx.uploader.Upload(context.Background(), testDocument())
	require.NoError(t, err)

	// The prefilled email field is left alone; only the password is typed.
	assert.Equal(t, []string{passwordSelector + "=hunter2"}, fx.page.Fills)
}

func TestUploader_LoginFailureSurfacesAsAuthenticationError(t *testing.T) {
	t.Parallel()

	cause := errors.New("timed out")

	tests := []struct {
		name  string
		setup func(page *testutils.FakePage)
	}{
		{
			name: "upload control never appears after login",
			setup: func(page *testutils.FakePage) {
				page.WaitErrs = map[string]error{uploadIconSelector: cause}
			},
		},
		{
			name: "confirmation never appears after login",
			setup: func(page *testutils.FakePage) {
				page.WaitErrs = map[string]error{uploadedSelector: cause}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t)
			fx.page.VisibleSelectors = map[string]bool{passwordSelector: true}
			tt.setup(fx.page)

			err := fx.uploader.Upload(context.Background(), testDocument())
			require.Error(t, err)

			// Rejected credentials have no structured signal; a post-login
			// downstream timeout is attributed to authentication.
			var authErr *uploader.AuthenticationError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, destinationURL, authErr.URL)
			assert.True(t, errors.Is(err, cause))
		})
	}
}

func TestUploader_LoginPersistsCookiesBeforeUpload(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	fx.page.VisibleSelectors = map[string]bool{passwordSelector: true}
	fx.page.WaitErrs = map[string]error{uploadedSelector: errors.New("timed out")}

	err := fx.uploader.Upload(context.Background(), testDocument())
	require.Error(t, err)

	// The post-login cookie snapshot survives the failed upload, so the next
	// run can reuse the fresh session.
	saved, loadErr := fx.store.Load()
	require.NoError(t, loadErr)
	assert.Equal(t, fx.session.CookieJar, saved)
}

func TestUploader_UploadStageFailures(t *testing.T) {
	t.Parallel()

	cause := errors.New("timed out")

	tests := []struct {
		name          string
		setup         func(page *testutils.FakePage)
		expectedStage string
	}{
		{
			name: "navigation failure",
			setup: func(page *testutils.FakePage) {
				page.NavigateErr = cause
			},
			expectedStage: uploader.StageNavigate,
		},
		{
			name: "upload control never appears",
			setup: func(page *testutils.FakePage) {
				page.WaitErrs = map[string]error{uploadIconSelector: cause}
			},
			expectedStage: uploader.StageTrigger,
		},
		{
			name: "file chooser never opens",
			setup: func(page *testutils.FakePage) {
				page.ChooserErr = cause
			},
			expectedStage: uploader.StageTrigger,
		},
		{
			name: "confirmation never appears",
			setup: func(page *testutils.FakePage) {
				page.WaitErrs = map[string]error{uploadedSelector: cause}
			},
			expectedStage: uploader.StageConfirm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t)
			tt.setup(fx.page)

			err := fx.uploader.Upload(context.Background(), testDocument())
			require.Error(t, err)

			// No login was attempted, so these are plain upload failures.
			var uploadErr *uploader.UploadError
			require.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedStage, uploadErr.Stage)
			assert.Equal(t, "proj.pdf", uploadErr.Name)
			assert.True(t, errors.Is(err, cause))

			assert.True(t, fx.session.Closed)
		})
	}
}

func TestUploader_StampedNamesAreDistinctAcrossRuns(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)

	clock := time.Unix(1700000000, 0)
	uploader.SetClock(fx.uploader, func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	require.NoError(t, fx.uploader.Upload(context.Background(), testDocument()))
	require.NoError(t, fx.uploader.Upload(context.Background(), testDocument()))

	require.Len(t, fx.page.ChooserPaths, 2)
	assert.NotEqual(t,
		filepath.Base(fx.page.ChooserPaths[0]),
		filepath.Base(fx.page.ChooserPaths[1]),
	)
}

func TestConfig_WithDefaults(t *testing.T) {
	t.Parallel()

	cfg := uploader.Config{}.WithDefaults()
	assert.Equal(t, 60*time.Second, cfg.UploadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ActionTimeout)

	custom := uploader.Config{
		UploadTimeout: 2 * time.Minute,
		ActionTimeout: time.Second,
	}.WithDefaults()
	assert.Equal(t, 2*time.Minute, custom.UploadTimeout)
	assert.Equal(t, time.Second, custom.ActionTimeout)
}
