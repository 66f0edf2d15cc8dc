// Package synology talks to the Synology DSM web API: login and Download Station tasks.
package synology

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// maxLoginAttempts bounds the handshake to the first try plus one retry with an OTP
const maxLoginAttempts = 2

// OTPSource supplies a one-time code when the server requires one.
type OTPSource interface {
	OTP(ctx context.Context) (string, error)
}

// Client is a Synology web API client bound to a single host.
type Client struct {
	host       string
	httpClient *http.Client
	logger     *slog.Logger
	errOut     io.Writer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. A nil client is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithErrOut sets where user-facing failure messages are written.
func WithErrOut(w io.Writer) Option {
	return func(c *Client) {
		c.errOut = w
	}
}

// NewClient creates a client for host, e.g. "http://nas.local:5000".
func NewClient(host string, opts ...Option) *Client {
	c := &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		errOut:     io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate logs in and returns a session id.
// When the first attempt fails because an OTP is required, the code is
// fetched from otp and the login is retried exactly once.
func (c *Client) Authenticate(ctx context.Context, account, passwd string, otp OTPSource) (string, error) {
	otpCode := ""
	for attempt := 1; ; attempt++ {
		c.logger.Debug("login attempt", "host", c.host, "attempt", attempt, "with_otp", otpCode != "")

		resp, err := c.login(ctx, account, passwd, otpCode)
		if err != nil {
			return "", err
		}

		if resp.Success {
			return sessionID(resp)
		}

		if otpCode == "" && attempt < maxLoginAttempts && resp.otpRequired() {
			code, err := resolveOTP(ctx, otp)
			if err != nil {
				return "", err
			}
			otpCode = code
			continue
		}

		return "", &AuthError{Message: "Authentication failed: " + resp.errorPayload()}
	}
}

// Session is Authenticate with every failure reported on the error writer
// and collapsed into an empty session id.
func (c *Client) Session(ctx context.Context, account, passwd string, otp OTPSource) string {
	sid, err := c.Authenticate(ctx, account, passwd, otp)
	if err != nil {
		fmt.Fprintf(c.errOut, "Authentication error: %v\n", err)
		return ""
	}
	return sid
}

// CreateDownload submits uri as a new Download Station task saved to destination.
func (c *Client) CreateDownload(ctx context.Context, sid, uri, destination string) bool {
	status, body, err := c.post(ctx, taskPath, newCreateTaskParams(sid, uri, destination))
	if err != nil {
		fmt.Fprintf(c.errOut, "Download creation failed: %v\n", err)
		return false
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Fprintf(c.errOut, "Download creation failed: HTTP %d: %s\n", status, strings.TrimSpace(string(body)))
		return false
	}

	if !isSuccess(status) || !resp.Success {
		fmt.Fprintf(c.errOut, "Download creation failed: HTTP %d: %s\n", status, strings.TrimSpace(string(body)))
		return false
	}

	c.logger.Debug("download task created", "destination", destination)
	return true
}

// ShortSID returns the displayable prefix of a session id.
func ShortSID(sid string) string {
	if len(sid) <= 8 {
		return sid
	}
	return sid[:8]
}

func (c *Client) login(ctx context.Context, account, passwd, otpCode string) (apiResponse, error) {
	status, body, err := c.post(ctx, authPath, newLoginParams(account, passwd, otpCode))
	if err != nil {
		return apiResponse{}, &AuthError{Message: "login request failed", Err: err}
	}

	if !isSuccess(status) {
		return apiResponse{}, &AuthError{StatusCode: status, Message: fmt.Sprintf("HTTP error: %d", status)}
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return apiResponse{}, &AuthError{StatusCode: status, Message: "failed to decode login response", Err: err}
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, params any) (int, []byte, error) {
	values, err := query.Values(params)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, strings.NewReader(values.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("api response", "path", path, "status", resp.StatusCode)
	return resp.StatusCode, body, nil
}

func resolveOTP(ctx context.Context, otp OTPSource) (string, error) {
	if otp == nil {
		return "", &AuthError{Message: "OTP required", Err: ErrOTPUnavailable}
	}

	code, err := otp.OTP(ctx)
	if err != nil {
		if errors.Is(err, ErrOTPUnavailable) {
			return "", &AuthError{Message: "OTP required", Err: err}
		}
		return "", &AuthError{Message: "OTP required", Err: fmt.Errorf("%w: %v", ErrOTPUnavailable, err)}
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return "", &AuthError{Message: "OTP required", Err: ErrOTPUnavailable}
	}
	return code, nil
}

func sessionID(resp apiResponse) (string, error) {
	var data loginData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return "", &AuthError{Message: "failed to decode session id", Err: err}
		}
	}
	if data.SID == "" {
		return "", &AuthError{Message: "login succeeded without a session id"}
	}
	return data.SID, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
