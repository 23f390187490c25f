package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidPath, "path %q does not exist", "/tmp/x")
	want := `INVALID_PATH: path "/tmp/x" does not exist`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(ErrCodeUndecodable, stderrors.New("invalid utf-8"), "file %s", "a.bin")
	if got := wrapped.Error(); got != "UNDECODABLE_SOURCE: file a.bin: invalid utf-8" {
		t.Errorf("wrapped Error() = %q", got)
	}
}

func TestCodeMatching(t *testing.T) {
	err := New(ErrCodeUndecodable, "binary file")
	if !Is(err, ErrCodeUndecodable) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInvalidPath) {
		t.Error("Is should not match a different code")
	}
	if GetCode(err) != ErrCodeUndecodable {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("GetCode on plain error should be empty")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap(ErrCodeInternal, cause, "context")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}

func TestIsFatal(t *testing.T) {
	if IsFatal(New(ErrCodeUndecodable, "binary")) {
		t.Error("undecodable sources must not abort the run")
	}
	if IsFatal(New(ErrCodeHighlightFailed, "no lexer")) {
		t.Error("highlight failures must not abort the run")
	}
	if !IsFatal(New(ErrCodeInvalidPath, "missing")) {
		t.Error("invalid paths are fatal")
	}
	if !IsFatal(stderrors.New("plain")) {
		t.Error("unknown errors default to fatal")
	}
}
