package internal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/scriptogre/sdls/internal/synology"
)

var _ synology.OTPSource = (*OTPResolver)(nil)

// OTPResolver produces a one-time code: from the secret source when an item
// is configured, otherwise (or on failure) from a masked prompt.
type OTPResolver struct {
	Config   *Config
	Secrets  SecretSource
	Prompter Prompter
	Out      io.Writer
}

func (r *OTPResolver) OTP(ctx context.Context) (string, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	Progress(out, "OTP required for authentication.")

	if r.Config != nil && r.Config.OPItemName != "" && r.Secrets != nil && r.Secrets.Available() {
		Progress(out, "Fetching OTP from 1Password...")
		code, err := r.Secrets.GetOTP(ctx, r.Config.OPItemName, r.Config.OPAccount)
		switch {
		case err != nil:
			Progress(out, "1Password error: %v", err)
		case strings.TrimSpace(code) != "":
			return strings.TrimSpace(code), nil
		default:
			Progress(out, "No OTP found in 1Password item")
		}
	}

	if r.Prompter == nil {
		return "", synology.ErrOTPUnavailable
	}

	code, err := r.Prompter.Mask("Please enter your OTP code:")
	if err != nil {
		return "", fmt.Errorf("%w: %v", synology.ErrOTPUnavailable, err)
	}
	if code = strings.TrimSpace(code); code == "" {
		return "", synology.ErrOTPUnavailable
	}
	return code, nil
}
