// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrClipboardUnavailable reports a platform without a usable clipboard utility.
var ErrClipboardUnavailable = errors.New("system clipboard is unavailable")

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(text string) error

// Copy calls the wrapped function.
func (copierFunc CopierFunc) Copy(text string) error {
	return copierFunc(text)
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopierFunc(nil)
)
