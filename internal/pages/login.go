// Package pages holds page objects built on the wrapped actions.
package pages

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/suma737/webharness/internal/browser"
	"github.com/suma737/webharness/internal/errorreport"
	"github.com/suma737/webharness/internal/taxonomy"
)

// Default selectors for the login form. Override per application if needed.
const (
	SelectorUsername    = "#username"
	SelectorPassword    = "#password"
	SelectorSubmit      = "button[type=submit]"
	SelectorLoggedInNav = "nav .user-menu"
)

// Credentials is YAML-driven login test data.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadCredentials reads credentials from a YAML fixture file.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("credentials file %s: username and password are required", path)
	}
	return creds, nil
}

// LoginPage drives an application's login flow.
type LoginPage struct {
	actions *browser.Actions
	handler *errorreport.Handler
	logger  *zap.Logger
}

// NewLoginPage builds the page object.
func NewLoginPage(actions *browser.Actions, handler *errorreport.Handler, logger *zap.Logger) *LoginPage {
	return &LoginPage{
		actions: actions,
		handler: handler,
		logger:  logger.Named("login_page"),
	}
}

// Login navigates to the login URL, submits credentials and waits for the
// logged-in marker. A flow that completes the form but never shows the
// marker is reported as an AUTH failure rather than an element problem.
func (p *LoginPage) Login(ctx context.Context, url string, creds Credentials) error {
	if err := p.actions.Navigate(ctx, url); err != nil {
		return err
	}
	if err := p.actions.Fill(ctx, SelectorUsername, creds.Username); err != nil {
		return err
	}
	if err := p.actions.Fill(ctx, SelectorPassword, creds.Password); err != nil {
		return err
	}
	if err := p.actions.Click(ctx, SelectorSubmit); err != nil {
		return err
	}

	if !p.actions.IsVisible(ctx, SelectorLoggedInNav) {
		_, herr := p.handler.Handle(ctx, taxonomy.AuthLoginFailed, map[string]any{
			"url":      url,
			"username": creds.Username,
		}, true)
		return herr
	}

	p.logger.Info("Login succeeded", zap.String("username", creds.Username))
	return nil
}

// LoggedIn probes for the logged-in marker without failing the test.
func (p *LoginPage) LoggedIn(ctx context.Context) bool {
	return p.actions.IsVisible(ctx, SelectorLoggedInNav)
}
