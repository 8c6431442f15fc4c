// Package commands models user gestures as discrete values routed to the dispatcher.
package commands

import "io"

// Type identifies a command.
type Type string

const (
	TypeUpload  Type = "upload"
	TypeConvert Type = "convert"
	TypeDisplay Type = "display"
	TypeDelete  Type = "delete"
	TypeRefresh Type = "refresh"
)

// Command is a gesture ready for dispatch.
type Command interface {
	Type() Type
}

// UploadFile is a dropped or picked file. ContentType is the media type
// declared by the browser, not sniffed from the content.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Upload asks for a batch of files to be uploaded in order.
type Upload struct {
	Files []UploadFile
}

// Convert asks for one photo to be converted for the e-ink display.
type Convert struct {
	Filename string
}

// Display asks for one photo to be pushed to the display.
type Display struct {
	Filename string
}

// Delete asks for one photo to be removed.
type Delete struct {
	Filename string
}

// Refresh asks for the grid to be rebuilt.
type Refresh struct{}

func (Upload) Type() Type  { return TypeUpload }
func (Convert) Type() Type { return TypeConvert }
func (Display) Type() Type { return TypeDisplay }
func (Delete) Type() Type  { return TypeDelete }
func (Refresh) Type() Type { return TypeRefresh }
