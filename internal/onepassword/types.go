package onepassword

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// SecretSourceError reports a failed op invocation for a single field
type SecretSourceError struct {
	Field string
	Err   error
}

func (e *SecretSourceError) Error() string {
	return fmt.Sprintf("Failed to retrieve %s from 1Password: %v", e.Field, e.Err)
}

func (e *SecretSourceError) Unwrap() error {
	return e.Err
}

// Runner executes an external command and returns its captured output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
