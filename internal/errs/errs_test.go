package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageCarriesContext(t *testing.T) {
	err := Newf(ImageDecode, "unreadable mask").WithPath("/ws/masks/00003.png").WithIndex(3)

	msg := err.Error()
	assert.Contains(t, msg, "image_decode")
	assert.Contains(t, msg, "unreadable mask")
	assert.Contains(t, msg, "/ws/masks/00003.png")
	assert.Contains(t, msg, "frame 3")
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk unplugged")
	err := Wrap(Encoding, cause, "frame append failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk unplugged")
}

func TestIsKindThroughWrapping(t *testing.T) {
	inner := New(Configuration, "workspace missing")
	outer := fmt.Errorf("run aborted: %w", inner)

	assert.True(t, IsKind(outer, Configuration))
	assert.False(t, IsKind(outer, Encoding))
	assert.Equal(t, Configuration, KindOf(outer))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), Lifecycle))
}

func TestIndexOmittedWhenUnknown(t *testing.T) {
	err := New(Lifecycle, "append after finalize")
	assert.NotContains(t, err.Error(), "frame")
}
