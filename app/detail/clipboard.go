package detail

import (
	"errors"

	"github.com/atotto/clipboard"
)

// SystemClipboard is the clipboard of the operating system.
type SystemClipboard struct{}

// WriteText implements Clipboard interface.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	return clipboard.WriteAll(text)
}
