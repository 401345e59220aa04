package pages_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suma737/webharness/internal/browser"
	"github.com/suma737/webharness/internal/config"
	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/pages"
	"github.com/suma737/webharness/internal/taxonomy"
)

// fakePrimitives simulates a login form.
type fakePrimitives struct {
	fillErr     error
	markerShown bool

	fills  map[string]string
	clicks []string
}

func (f *fakePrimitives) URL(ctx context.Context) (string, error)   { return "https://t/login", nil }
func (f *fakePrimitives) Title(ctx context.Context) (string, error) { return "Login", nil }
func (f *fakePrimitives) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	return []byte{1}, nil
}
func (f *fakePrimitives) Navigate(ctx context.Context, url string) error { return nil }
func (f *fakePrimitives) Click(ctx context.Context, selector string) error {
	f.clicks = append(f.clicks, selector)
	return nil
}

func (f *fakePrimitives) Fill(ctx context.Context, selector, value string) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	if f.fills == nil {
		f.fills = make(map[string]string)
	}
	f.fills[selector] = value
	return nil
}

func (f *fakePrimitives) Text(ctx context.Context, selector string) (string, error) { return "", nil }
func (f *fakePrimitives) Visible(ctx context.Context, selector string) (bool, error) {
	return f.markerShown, nil
}
func (f *fakePrimitives) WaitVisible(ctx context.Context, selector string) error { return nil }

func newLoginPage(t *testing.T, page browser.Primitives) *pages.LoginPage {
	t.Helper()
	repCfg := config.ReportingConfig{ResultsDir: t.TempDir(), AppName: "app"}
	reporter := errorreport.New(repCfg, page, zap.NewNop())
	handler := errorreport.NewHandler(reporter, zap.NewNop())
	browserCfg := config.BrowserConfig{
		ViewportWidth:     1280,
		ViewportHeight:    800,
		NavigationTimeout: time.Second,
		ActionTimeout:     time.Second,
	}
	actions := browser.NewActions(page, handler, browserCfg, zap.NewNop())
	return pages.NewLoginPage(actions, handler, zap.NewNop())
}

func TestLogin_Success(t *testing.T) {
	page := &fakePrimitives{markerShown: true}
	lp := newLoginPage(t, page)

	creds := pages.Credentials{Username: "alice", Password: "s3cret"}
	require.NoError(t, lp.Login(context.Background(), "https://t/login", creds))

	assert.Equal(t, "alice", page.fills[pages.SelectorUsername])
	assert.Equal(t, "s3cret", page.fills[pages.SelectorPassword])
	assert.Equal(t, []string{pages.SelectorSubmit}, page.clicks)
	assert.True(t, lp.LoggedIn(context.Background()))
}

func TestLogin_MarkerNeverAppears(t *testing.T) {
	page := &fakePrimitives{markerShown: false}
	lp := newLoginPage(t, page)

	err := lp.Login(context.Background(), "https://t/login", pages.Credentials{Username: "alice", Password: "x"})
	ce, ok := errorreport.Classified(err)
	require.True(t, ok)
	assert.Equal(t, taxonomy.AuthLoginFailed.Code, ce.Code)
	assert.Equal(t, taxonomy.CategoryAuth, ce.Category)
}

func TestLogin_FormFailureKeepsElementClassification(t *testing.T) {
	page := &fakePrimitives{fillErr: errors.New("input disabled")}
	lp := newLoginPage(t, page)

	err := lp.Login(context.Background(), "https://t/login", pages.Credentials{Username: "alice", Password: "x"})
	ce, ok := errorreport.Classified(err)
	require.True(t, ok)
	assert.Equal(t, taxonomy.ElementWrongState.Code, ce.Code)
}

func TestLoadCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: alice\npassword: s3cret\n"), 0o600))

	creds, err := pages.LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "s3cret", creds.Password)
}

func TestLoadCredentials_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: alice\n"), 0o600))

	_, err := pages.LoadCredentials(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
