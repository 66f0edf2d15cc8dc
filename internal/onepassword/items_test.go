package onepassword

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout string
	stderr string
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return []byte(f.stdout), []byte(f.stderr), f.err
}

func TestGetFieldArguments(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    []string
	}{
		{
			name: "without account",
			want: []string{"op", "item", "get", "NAS", "--fields", "username", "--reveal"},
		},
		{
			name:    "with account",
			account: "my.1password.com",
			want:    []string{"op", "item", "get", "NAS", "--fields", "username", "--reveal", "--account", "my.1password.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{stdout: "alice\n"}
			var out bytes.Buffer
			client := &Client{Runner: runner, Out: &out}

			value, err := client.GetField(context.Background(), "NAS", "username", tt.account)
			require.NoError(t, err)
			assert.Equal(t, "alice", value)
			require.Len(t, runner.calls, 1)
			assert.Equal(t, tt.want, runner.calls[0])
			assert.Contains(t, out.String(), "Fetching username from 1Password")
		})
	}
}

func TestGetFieldEmptyOutputMeansMissing(t *testing.T) {
	client := &Client{Runner: &fakeRunner{stdout: "  \n"}}

	value, err := client.GetField(context.Background(), "NAS", "nonexistent_field", "")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestGetFieldCommandFailure(t *testing.T) {
	runner := &fakeRunner{stderr: "[ERROR] item not found\n", err: errors.New("exit status 1")}
	client := &Client{Runner: runner}

	_, err := client.GetField(context.Background(), "NAS", "password", "")
	require.Error(t, err)

	var sourceErr *SecretSourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, "password", sourceErr.Field)
	assert.Equal(t, "Failed to retrieve password from 1Password: [ERROR] item not found", err.Error())
}

func TestGetFieldStartFailure(t *testing.T) {
	client := &Client{Runner: &fakeRunner{err: errors.New("Command failed")}}

	_, err := client.GetField(context.Background(), "NAS", "username", "")
	assert.EqualError(t, err, "Failed to retrieve username from 1Password: Command failed")
}

func TestGetOTP(t *testing.T) {
	runner := &fakeRunner{stdout: "123456\n"}
	var out bytes.Buffer
	client := &Client{Runner: runner, Out: &out}

	code, err := client.GetOTP(context.Background(), "NAS", "team")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
	assert.Equal(t, []string{"op", "item", "get", "NAS", "--otp", "--account", "team"}, runner.calls[0])
	assert.NotContains(t, out.String(), "123456")
}
