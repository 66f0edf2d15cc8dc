package internal

import (
	"context"
	"fmt"

	"github.com/scriptogre/sdls/internal/onepassword"
)

// fakeSecrets is an in-memory SecretSource that records every lookup
type fakeSecrets struct {
	available bool
	fields    map[string]string
	failures  map[string]error
	otp       string
	otpErr    error

	fieldCalls []string
	otpCalls   int
}

func (f *fakeSecrets) Available() bool {
	return f.available
}

func (f *fakeSecrets) GetField(_ context.Context, itemName, field, _ string) (string, error) {
	f.fieldCalls = append(f.fieldCalls, field)
	if err, ok := f.failures[field]; ok {
		return "", &onepassword.SecretSourceError{Field: field, Err: err}
	}
	return f.fields[field], nil
}

func (f *fakeSecrets) GetOTP(context.Context, string, string) (string, error) {
	f.otpCalls++
	if f.otpErr != nil {
		return "", &onepassword.SecretSourceError{Field: "otp", Err: f.otpErr}
	}
	return f.otp, nil
}

type promptCall struct {
	kind  string
	label string
}

// fakePrompter answers from fixed values and fails on unexpected calls
type fakePrompter struct {
	ask    []string
	mask   []string
	choice string

	calls []promptCall
}

func (p *fakePrompter) Ask(label string) (string, error) {
	p.calls = append(p.calls, promptCall{"ask", label})
	if len(p.ask) == 0 {
		return "", fmt.Errorf("unexpected ask %q", label)
	}
	answer := p.ask[0]
	p.ask = p.ask[1:]
	return answer, nil
}

func (p *fakePrompter) Mask(label string) (string, error) {
	p.calls = append(p.calls, promptCall{"mask", label})
	if len(p.mask) == 0 {
		return "", fmt.Errorf("unexpected mask %q", label)
	}
	answer := p.mask[0]
	p.mask = p.mask[1:]
	return answer, nil
}

func (p *fakePrompter) Select(title string, options []string, defaultValue string) (string, error) {
	p.calls = append(p.calls, promptCall{"select", title})
	if p.choice == "" {
		return defaultValue, nil
	}
	return p.choice, nil
}
