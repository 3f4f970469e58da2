// Package graph backs the directory contracts with the Microsoft Graph
// API: device-code sign-in per tenant, managedDevices queries with
// server-side filtering and transparent pagination.
package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fatih/color"
	"golang.org/x/oauth2"

	"github.com/LinuxLinusDE/MS-365/directory"
	"github.com/LinuxLinusDE/MS-365/telemetry"
)

const (
	defaultAuthority = "https://login.microsoftonline.com"
	defaultBaseURL   = "https://graph.microsoft.com"
	defaultPageSize  = 100
)

func init() {
	directory.RegisterSource("graph", func(cfg directory.SourceConfig) (directory.DeviceSource, error) {
		return New(cfg)
	})
}

// PromptFunc tells the operator where to enter the device code.
type PromptFunc func(tenant, verificationURI, userCode string)

// Client talks to Microsoft Graph for one tenant at a time. At most one
// session is live; acquiring a new one supersedes the previous.
type Client struct {
	clientID  string
	scopes    []string
	authority string
	baseURL   string
	pageSize  int
	prompt    PromptFunc
	logger    *telemetry.Logger
	active    *session
}

// New creates a Graph client from source configuration
func New(cfg directory.SourceConfig) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("client id is required")
	}
	return &Client{
		clientID:  cfg.ClientID,
		scopes:    cfg.Scopes,
		authority: defaultAuthority,
		baseURL:   defaultBaseURL,
		pageSize:  defaultPageSize,
		prompt:    consolePrompt,
		logger:    telemetry.NewLogger("graph"),
	}, nil
}

// Name returns the source name
func (c *Client) Name() string {
	return "graph"
}

// session is the live authenticated context for one tenant.
type session struct {
	tenant   string
	client   *http.Client
	released bool
}

func (s *session) Tenant() string {
	return s.tenant
}

// AcquireSession runs the device-code flow for the tenant. It blocks
// until the operator completes the interactive sign-in (including any
// MFA challenge) or the device code expires.
func (c *Client) AcquireSession(ctx context.Context, tenant string) (directory.Session, error) {
	// A new session supersedes whatever was live before it.
	if c.active != nil {
		c.ReleaseSession(c.active)
	}

	cfg := c.oauthConfig(tenant)

	auth, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization for %s: %w", tenant, err)
	}

	c.prompt(tenant, auth.VerificationURI, auth.UserCode)

	token, err := cfg.DeviceAccessToken(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("waiting for sign-in to %s: %w", tenant, err)
	}

	s := &session{
		tenant: tenant,
		client: oauth2.NewClient(ctx, cfg.TokenSource(ctx, token)),
	}
	c.active = s

	c.logger.WithContext(ctx).Debug().
		Str("tenant", tenant).
		Msg("session acquired")

	return s, nil
}

// ReleaseSession invalidates the session. Idempotent; safe on nil.
func (c *Client) ReleaseSession(s directory.Session) {
	sess, ok := s.(*session)
	if !ok || sess == nil || sess.released {
		return
	}

	sess.released = true
	sess.client = nil
	if c.active == sess {
		c.active = nil
	}

	c.logger.Debug().
		Str("tenant", sess.tenant).
		Msg("session released")
}

// oauthConfig builds the per-tenant OAuth2 endpoints
func (c *Client) oauthConfig(tenant string) *oauth2.Config {
	base := c.authority + "/" + url.PathEscape(tenant)
	return &oauth2.Config{
		ClientID: c.clientID,
		Scopes:   c.scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:       base + "/oauth2/v2.0/authorize",
			TokenURL:      base + "/oauth2/v2.0/token",
			DeviceAuthURL: base + "/oauth2/v2.0/devicecode",
		},
	}
}

// consolePrompt prints the device-code instructions for the operator
func consolePrompt(tenant, verificationURI, userCode string) {
	fmt.Println()
	color.New(color.FgCyan, color.Bold).Printf("[%s] ", tenant)
	fmt.Printf("open %s and enter code ", verificationURI)
	color.New(color.FgYellow, color.Bold).Printf("%s\n", userCode)
	fmt.Println("Waiting for sign-in to complete...")
}
