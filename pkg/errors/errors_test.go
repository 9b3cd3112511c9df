package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSelection, "no such attribute: %s", "dose")

	if err.Code != ErrCodeInvalidSelection {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidSelection)
	}

	if err.Message != "no such attribute: dose" {
		t.Errorf("Message = %v, want %v", err.Message, "no such attribute: dose")
	}

	expected := "INVALID_SELECTION: no such attribute: dose"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "failed to read layout")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestConfig(t *testing.T) {
	err := Config("plate.toml", "unknown section %q", "wel")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}
	if err.Path != "plate.toml" {
		t.Errorf("Path = %v, want %v", err.Path, "plate.toml")
	}

	expected := `INVALID_CONFIG: plate.toml: unknown section "wel"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWithPath(t *testing.T) {
	t.Run("adds path", func(t *testing.T) {
		orig := New(ErrCodeInvalidConfig, "bad well")
		err := WithPath(orig, "a.toml")

		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("WithPath() returned %T, want *Error", err)
		}
		if e.Path != "a.toml" {
			t.Errorf("Path = %v, want %v", e.Path, "a.toml")
		}
		if orig.Path != "" {
			t.Error("WithPath should not modify the original error")
		}
	})

	t.Run("keeps existing path", func(t *testing.T) {
		err := WithPath(Config("inner.toml", "bad"), "outer.toml")

		var e *Error
		errors.As(err, &e)
		if e.Path != "inner.toml" {
			t.Errorf("Path = %v, want %v", e.Path, "inner.toml")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		plain := errors.New("plain")
		if got := WithPath(plain, "a.toml"); got != plain {
			t.Errorf("WithPath() = %v, want original error", got)
		}
	})
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidSelection, "test"),
			code:     ErrCodeInvalidSelection,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidSelection, "test"),
			code:     ErrCodeInvalidConfig,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidSelection, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidColor, "test"),
			expected: ErrCodeInvalidColor,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidSelection, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "with path",
			err:      Config("plate.toml", "no wells defined"),
			expected: "Error in plate.toml:\nno wells defined",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeFileNotFound, errors.New("permission denied"), "cannot read plate.toml"),
			expected: "cannot read plate.toml: permission denied",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorStringHasCode(t *testing.T) {
	err := Wrap(ErrCodeInternal, errors.New("boom"), "render failed")
	if !strings.HasPrefix(err.Error(), string(ErrCodeInternal)) {
		t.Errorf("Error() = %q, want prefix %q", err.Error(), ErrCodeInternal)
	}
}
