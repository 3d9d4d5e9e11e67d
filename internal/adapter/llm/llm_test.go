package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-practice/internal/config"
	"github.com/heartmarshall/myenglish-practice/internal/domain"
)

type backendMock struct {
	CompleteModelFunc func(ctx context.Context, model, prompt string) (string, error)
	calls             []string
}

func (m *backendMock) CompleteModel(ctx context.Context, model, prompt string) (string, error) {
	m.calls = append(m.calls, model)
	return m.CompleteModelFunc(ctx, model, prompt)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFallback_FirstModelSucceeds(t *testing.T) {
	t.Parallel()

	b := &backendMock{CompleteModelFunc: func(_ context.Context, model, prompt string) (string, error) {
		return "Alice: Hi (" + model + ")", nil
	}}
	f := NewFallback(b, []string{"m1", "m2"}, time.Second, discardLogger())

	got, err := f.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Alice: Hi (m1)", got)
	assert.Equal(t, []string{"m1"}, b.calls)
}

func TestFallback_FallsThroughOnErrorAndEmpty(t *testing.T) {
	t.Parallel()

	b := &backendMock{CompleteModelFunc: func(_ context.Context, model, _ string) (string, error) {
		switch model {
		case "m1":
			return "", errors.New("overloaded")
		case "m2":
			return "  \n ", nil
		}
		return "```\nBob: Fine.\n```", nil
	}}
	f := NewFallback(b, []string{"m1", "m2", "m3"}, 0, discardLogger())

	got, err := f.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "Bob: Fine.", got)
	assert.Equal(t, []string{"m1", "m2", "m3"}, b.calls)
}

func TestFallback_AllFail(t *testing.T) {
	t.Parallel()

	b := &backendMock{CompleteModelFunc: func(context.Context, string, string) (string, error) {
		return "", errors.New("boom")
	}}
	f := NewFallback(b, []string{"m1", "m2"}, 0, discardLogger())

	_, err := f.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
	assert.Contains(t, err.Error(), "m1: boom")
	assert.Contains(t, err.Error(), "m2: boom")
}

func TestFallback_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	b := &backendMock{CompleteModelFunc: func(context.Context, string, string) (string, error) {
		cancel()
		return "", errors.New("interrupted")
	}}
	f := NewFallback(b, []string{"m1", "m2"}, 0, discardLogger())

	_, err := f.Complete(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"m1"}, b.calls)
}

func TestFallback_AppliesTimeout(t *testing.T) {
	t.Parallel()

	b := &backendMock{CompleteModelFunc: func(ctx context.Context, _, _ string) (string, error) {
		_, ok := ctx.Deadline()
		if !ok {
			return "", errors.New("no deadline")
		}
		return "ok", nil
	}}
	f := NewFallback(b, []string{"m1"}, time.Minute, discardLogger())

	got, err := f.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestNew_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.LLMConfig{Provider: "anthropic"}, discardLogger())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew_Anthropic(t *testing.T) {
	t.Parallel()

	f, err := New(context.Background(), config.LLMConfig{
		Provider: "anthropic", APIKey: "k", Models: []string{"claude-sonnet-4-5"}, MaxTokens: 256,
	}, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, f.backend)
	assert.Equal(t, []string{"claude-sonnet-4-5"}, f.models)
}

func TestUnavailable(t *testing.T) {
	t.Parallel()

	_, err := Unavailable{}.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"```\nAlice: Hi\n```", "Alice: Hi"},
		{"```text\nAlice: Hi\nBob: Yo\n```", "Alice: Hi\nBob: Yo"},
		{"  ```Alice: Hi```  ", "Alice: Hi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripFences(tt.in), "input %q", tt.in)
	}
}
