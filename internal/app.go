package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/scriptogre/sdls/internal/onepassword"
	"github.com/scriptogre/sdls/internal/synology"
)

var (
	// ErrConnectionFailed is returned by Connect when no session could be opened
	ErrConnectionFailed = errors.New("connection failed")

	// ErrAuthenticationFailed is returned by Add when no session could be opened
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrDownloadFailed is returned by Add when the NAS rejects the task
	ErrDownloadFailed = errors.New("download creation failed")
)

// Options overrides the collaborators NewApp would otherwise build itself
type Options struct {
	ConfigPath string
	Out        io.Writer
	Err        io.Writer
	Prompter   Prompter
	Secrets    SecretSource
	HTTPClient *http.Client
	Clipboard  ClipboardReader
	Logger     *slog.Logger
}

// App represents the application with its dependencies
type App struct {
	config    *Config
	out       io.Writer
	errOut    io.Writer
	prompter  Prompter
	secrets   SecretSource
	synology  *synology.Client
	clipboard ClipboardReader
	logger    *slog.Logger
}

// NewApp loads the configuration and wires the application
func NewApp(opts Options) (*App, error) {
	path, err := ConfigPath(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    config,
		out:       opts.Out,
		errOut:    opts.Err,
		prompter:  opts.Prompter,
		secrets:   opts.Secrets,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
	}
	if app.out == nil {
		app.out = os.Stdout
	}
	if app.errOut == nil {
		app.errOut = os.Stderr
	}
	if app.logger == nil {
		app.logger = discardLogger()
	}
	if app.prompter == nil {
		app.prompter = NewPrompter(os.Stdin, os.Stderr)
	}
	if app.secrets == nil {
		app.secrets = onepassword.NewClient(app.out, app.logger)
	}

	clientOpts := []synology.Option{
		synology.WithLogger(app.logger),
		synology.WithErrOut(app.errOut),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, synology.WithHTTPClient(opts.HTTPClient))
	}
	app.synology = synology.NewClient(config.Host, clientOpts...)

	app.logger.Debug("configuration loaded", "path", path, "host", config.Host)
	return app, nil
}

// ShowConfig prints the configuration with the password redacted
func (a *App) ShowConfig() {
	c := a.config
	fmt.Fprintln(a.out, "Current config:")
	fmt.Fprintf(a.out, "  host: %s\n", c.Host)
	fmt.Fprintf(a.out, "  username: %s\n", c.Username)
	fmt.Fprintln(a.out, "  password: [REDACTED]")
	if c.OPItemName != "" {
		fmt.Fprintf(a.out, "  op_item_name: %s\n", c.OPItemName)
	}
	if c.OPAccount != "" {
		fmt.Fprintf(a.out, "  op_account: %s\n", c.OPAccount)
	}
	if len(c.Directories) > 0 {
		fmt.Fprintf(a.out, "  directories: %s\n", strings.Join(c.Directories, ", "))
	}
}

// Connect verifies that the NAS accepts the resolved credentials
func (a *App) Connect(ctx context.Context) error {
	sid := a.session(ctx)
	if sid == "" {
		return ErrConnectionFailed
	}

	ShowSuccess(a.out, fmt.Sprintf("Connection successful. Session ID: %s...", synology.ShortSID(sid)))
	return nil
}

// Add submits a magnet link to Download Station. An empty link is read
// from the clipboard; an empty destination is chosen from the configured directories.
func (a *App) Add(ctx context.Context, link, destination string) error {
	if strings.TrimSpace(link) == "" && a.clipboard != nil {
		clip, err := a.clipboard()
		if err != nil {
			a.logger.Debug("clipboard unavailable", "error", err)
		} else if ValidateMagnetLink(clip) == nil {
			Progress(a.out, "Using magnet link from clipboard")
			link = clip
		}
	}

	magnet, err := ParseMagnet(link)
	if err != nil {
		return err
	}

	destination, err = a.chooseDestination(destination)
	if err != nil {
		return err
	}

	sid := a.session(ctx)
	if sid == "" {
		return ErrAuthenticationFailed
	}

	Progress(a.out, "Adding %s", magnet.Label())
	if !a.synology.CreateDownload(ctx, sid, magnet.URI, destination) {
		return ErrDownloadFailed
	}

	ShowSuccess(a.out, "Download created successfully in "+destination)
	return nil
}

func (a *App) chooseDestination(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit, nil
	}

	dirs := a.config.Directories
	switch len(dirs) {
	case 0:
		return "", ErrNoDirectories
	case 1:
		return dirs[0], nil
	}

	selected, err := a.prompter.Select("Choose download directory", dirs, dirs[0])
	if err != nil {
		return "", fmt.Errorf("failed to select download directory: %w", err)
	}
	if selected == "" {
		return "", ErrNoDirectories
	}
	return selected, nil
}

// session resolves credentials and logs in. Every failure is reported on
// the error writer and yields an empty session id.
func (a *App) session(ctx context.Context) string {
	resolver := &CredentialResolver{
		Config:   a.config,
		Secrets:  a.secrets,
		Prompter: a.prompter,
		Out:      a.out,
		Logger:   a.logger,
	}
	creds, err := resolver.Resolve(ctx)
	if err != nil {
		fmt.Fprintf(a.errOut, "Authentication error: %v\n", err)
		return ""
	}

	otp := &OTPResolver{
		Config:   a.config,
		Secrets:  a.secrets,
		Prompter: a.prompter,
		Out:      a.out,
	}
	return a.synology.Session(ctx, creds.Username, creds.Password, otp)
}
