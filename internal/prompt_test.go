package internal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("  admin \nsecond\n"), &out)

	first, err := p.Ask("Please enter your username:")
	require.NoError(t, err)
	assert.Equal(t, "admin", first)

	second, err := p.Ask("Again:")
	require.NoError(t, err)
	assert.Equal(t, "second", second)

	assert.Equal(t, "Please enter your username: Again: ", out.String())
}

func TestLinePrompterMaskKeepsSpaces(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(" pass word \r\n"), io.Discard)

	secret, err := p.Mask("Please enter your password:")
	require.NoError(t, err)
	assert.Equal(t, " pass word ", secret)
}

func TestLinePrompterLastLineWithoutNewline(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("123456"), io.Discard)

	code, err := p.Mask("Please enter your OTP code:")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)
}

func TestLinePrompterEOF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader(""), nil)

	_, err := p.Ask("Please enter your username:")
	assert.ErrorIs(t, err, io.EOF)

	_, err = p.Mask("Please enter your password:")
	assert.ErrorIs(t, err, io.EOF)
}

func TestLinePrompterSelect(t *testing.T) {
	options := []string{"downloads", "movies", "series"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"empty picks default", "\n", "movies", ""},
		{"by number", "3\n", "series", ""},
		{"by name", "downloads\n", "downloads", ""},
		{"number out of range", "4\n", "", "invalid choice 4"},
		{"unknown name", "music\n", "", `invalid choice "music"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLinePrompter(strings.NewReader(tt.input), &out)

			got, err := p.Select("Choose download directory", options, "movies")
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Choose download directory")
			assert.Contains(t, out.String(), "* "+Yellow("2.")+" movies")
		})
	}
}

func TestLinePrompterSelectNoOptions(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("1\n"), io.Discard)

	got, err := p.Select("Choose download directory", nil, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewPrompterNonInteractive(t *testing.T) {
	t.Setenv(EnvInteractive, "false")

	p := NewPrompter(nil, nil)
	assert.IsType(t, &LinePrompter{}, p)
}

func TestLinePrompterMaskUsesBufferedInput(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("admin\nsecret\n123456\n"), io.Discard)

	user, err := p.Ask("Please enter your username:")
	require.NoError(t, err)
	require.Positive(t, p.reader.Buffered())

	pass, err := p.Mask("Please enter your password:")
	require.NoError(t, err)
	code, err := p.Mask("Please enter your OTP code:")
	require.NoError(t, err)

	assert.Equal(t, []string{"admin", "secret", "123456"}, []string{user, pass, code})
}
