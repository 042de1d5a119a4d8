// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

const errorClipboardWriteFormat = "copy to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	write func(string) error
}

// NewService constructs a Service writing to the system clipboard.
func NewService() *Service {
	return &Service{write: clipboard.WriteAll}
}

// Available reports whether the platform exposes a clipboard utility.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	write := service.write
	if write == nil {
		write = clipboard.WriteAll
	}
	if writeError := write(text); writeError != nil {
		return fmt.Errorf(errorClipboardWriteFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
