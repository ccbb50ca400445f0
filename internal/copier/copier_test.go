package copier

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
	"github.com/stretchr/testify/assert"
)

func TestCopy_Success(t *testing.T) {
	var got string
	c := Copier{Write: func(text string) error { got = text; return nil }}
	assert.Equal(t, LabelCopied, c.Copy("hello"))
	assert.Equal(t, "hello", got)
}

func TestCopy_FailureIsTransientLabel(t *testing.T) {
	c := Copier{Write: func(string) error { return errors.New("denied") }}
	assert.Equal(t, LabelFailed, c.Copy("hello"))
	// A later attempt is not blocked by the earlier failure.
	c.Write = func(string) error { return nil }
	assert.Equal(t, LabelCopied, c.Copy("hello"))
}

func TestCopy_NoClipboardBackend(t *testing.T) {
	saved := clipboard.Unsupported
	clipboard.Unsupported = true
	t.Cleanup(func() { clipboard.Unsupported = saved })

	assert.Equal(t, LabelFailed, Copier{}.Copy("hello"))
}
