package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SecretSource looks up fields of a named item in an external secret manager
type SecretSource interface {
	Available() bool
	GetField(ctx context.Context, itemName, field, account string) (string, error)
	GetOTP(ctx context.Context, itemName, account string) (string, error)
}

// Credentials is the username and password used for a single login
type Credentials struct {
	Username string
	Password string
}

// CredentialResolver assembles Credentials from the configuration, the
// secret source and interactive prompts, in that order of precedence.
type CredentialResolver struct {
	Config   *Config
	Secrets  SecretSource
	Prompter Prompter
	Out      io.Writer
	Logger   *slog.Logger
}

// Resolve returns complete credentials or an error; it never returns a half-filled pair.
//
// Configured values are used as-is. Fields the configuration lacks are looked
// up once in the secret source when an item name is configured and the source
// is available. Whatever is still missing is prompted for, once per field.
func (r *CredentialResolver) Resolve(ctx context.Context) (Credentials, error) {
	cfg := r.Config
	if cfg == nil {
		return Credentials{}, errors.New("no configuration loaded")
	}

	creds := Credentials{Username: cfg.Username, Password: cfg.Password}
	if cfg.HasCredentials() {
		r.logger().Debug("using credentials from configuration")
		return creds, nil
	}

	if cfg.OPItemName != "" && r.Secrets != nil && r.Secrets.Available() {
		r.fetchSecrets(ctx, &creds)
	}

	if creds.Username == "" {
		value, err := r.promptFor("username", false)
		if err != nil {
			return Credentials{}, err
		}
		creds.Username = value
	}

	if creds.Password == "" {
		value, err := r.promptFor("password", true)
		if err != nil {
			return Credentials{}, err
		}
		creds.Password = value
	}

	return creds, nil
}

func (r *CredentialResolver) fetchSecrets(ctx context.Context, creds *Credentials) {
	out := r.out()
	Progress(out, "Fetching credentials from 1Password...")

	fields := []struct {
		name   string
		target *string
	}{
		{"username", &creds.Username},
		{"password", &creds.Password},
	}

	var retrieved []string
	for _, field := range fields {
		if *field.target != "" {
			continue
		}

		value, err := r.Secrets.GetField(ctx, r.Config.OPItemName, field.name, r.Config.OPAccount)
		if err != nil {
			Progress(out, "1Password error: %v", err)
			continue
		}
		if value == "" {
			continue
		}

		*field.target = value
		retrieved = append(retrieved, field.name)
	}

	if len(retrieved) == 0 {
		Progress(out, "No credentials found in 1Password item")
		return
	}
	Progress(out, "Successfully retrieved %s from 1Password", strings.Join(retrieved, " and "))
}

func (r *CredentialResolver) promptFor(field string, masked bool) (string, error) {
	if r.Prompter == nil {
		return "", fmt.Errorf("no %s available and no prompt configured", field)
	}

	Progress(r.out(), "No %s available, please enter manually", field)

	label := fmt.Sprintf("Please enter your %s:", field)
	var (
		value string
		err   error
	)
	if masked {
		value, err = r.Prompter.Mask(label)
	} else {
		value, err = r.Prompter.Ask(label)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", field, err)
	}

	if !masked {
		value = strings.TrimSpace(value)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return value, nil
}

func (r *CredentialResolver) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *CredentialResolver) logger() *slog.Logger {
	if r.Logger == nil {
		return discardLogger()
	}
	return r.Logger
}
