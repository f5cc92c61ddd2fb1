package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	serr "concatd/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileError(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := serr.NewFileError("error reading file", "/tmp/a.txt", serr.ReadFailed, cause)

	assert.Equal(t, "error reading file: /tmp/a.txt: disk on fire", err.Error())
	assert.Equal(t, "/tmp/a.txt", err.Path())
	assert.Equal(t, serr.ReadFailed, err.Kind())
	assert.ErrorIs(t, err, cause)
}

func TestFileErrorWithoutCause(t *testing.T) {
	err := serr.NewFileError("output file already exists", "/tmp/out.txt", serr.OutputPathInvalid, nil)
	assert.Equal(t, "output file already exists: /tmp/out.txt", err.Error())
	assert.Nil(t, serr.Unwrap(err))
}

func TestValidationError(t *testing.T) {
	err := serr.NewValidationError("no files or folders selected", serr.SelectionEmpty)
	assert.Equal(t, "no files or folders selected", err.Error())
	assert.True(t, serr.IsSelectionEmpty(err))
}

func TestKindOfWrappedError(t *testing.T) {
	inner := serr.NewFileError("error reading file", "/tmp/a.txt", serr.ReadFailed, nil)
	wrapped := fmt.Errorf("run failed: %w", inner)

	assert.Equal(t, serr.ReadFailed, serr.KindOf(wrapped))
	assert.True(t, serr.IsReadFailed(wrapped))
	assert.False(t, serr.IsWriteFailed(wrapped))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, serr.Unknown, serr.KindOf(stderrors.New("plain")))
	assert.Equal(t, serr.Unknown, serr.KindOf(nil))
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := serr.Wrap(cause, "context")
	require.Error(t, err)
	assert.Equal(t, "context: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, serr.Wrap(nil, "context"))
	assert.Nil(t, serr.Wrapf(nil, "context %d", 1))
}

func TestNewf(t *testing.T) {
	err := serr.Newf("bad value %d", 42)
	assert.Equal(t, "bad value 42", err.Error())
	assert.Equal(t, serr.Unknown, serr.KindOf(err))
}

func TestKindHelpers(t *testing.T) {
	cases := []struct {
		kind  serr.ErrorKind
		check func(error) bool
	}{
		{serr.SelectionEmpty, serr.IsSelectionEmpty},
		{serr.OutputPathInvalid, serr.IsOutputPathInvalid},
		{serr.InvalidConfig, serr.IsInvalidConfig},
		{serr.FileNotFound, serr.IsFileNotFound},
		{serr.PermissionDenied, serr.IsPermissionDenied},
		{serr.ReadFailed, serr.IsReadFailed},
		{serr.WriteFailed, serr.IsWriteFailed},
	}
	for _, tc := range cases {
		err := serr.NewFileError("msg", "/p", tc.kind, nil)
		assert.True(t, tc.check(err))
	}
}
