package onepassword

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const binary = "op"

// Client fetches fields of 1Password items through the op CLI
type Client struct {
	Runner Runner
	Out    io.Writer
	Logger *slog.Logger
}

// NewClient creates a client that shells out to op and prints progress to out
func NewClient(out io.Writer, logger *slog.Logger) *Client {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		Runner: ExecRunner{},
		Out:    out,
		Logger: logger,
	}
}

// Available reports whether the op CLI can be used in this process
func (c *Client) Available() bool {
	return CLIAvailable()
}

// GetField retrieves a single revealed field of an item.
// An empty result means the field is not set on the item.
func (c *Client) GetField(ctx context.Context, itemName, field, account string) (string, error) {
	args := []string{"item", "get", itemName, "--fields", field, "--reveal"}
	if account != "" {
		args = append(args, "--account", account)
	}

	fmt.Fprintf(c.out(), "Fetching %s from 1Password...\n", field)
	return c.run(ctx, field, itemName, args)
}

// GetOTP retrieves the current one-time password of an item
func (c *Client) GetOTP(ctx context.Context, itemName, account string) (string, error) {
	args := []string{"item", "get", itemName, "--otp"}
	if account != "" {
		args = append(args, "--account", account)
	}

	return c.run(ctx, "otp", itemName, args)
}

func (c *Client) run(ctx context.Context, field, itemName string, args []string) (string, error) {
	runner := c.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	c.logger().Debug("invoking op", "item", itemName, "field", field)

	stdout, stderr, err := runner.Run(ctx, binary, args...)
	if err != nil {
		msg := strings.TrimSpace(string(stderr))
		if msg != "" {
			err = errors.New(msg)
		}
		c.logger().Debug("op invocation failed", "item", itemName, "field", field)
		return "", &SecretSourceError{Field: field, Err: err}
	}

	return strings.TrimSpace(string(stdout)), nil
}

func (c *Client) out() io.Writer {
	if c.Out == nil {
		return io.Discard
	}
	return c.Out
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}
