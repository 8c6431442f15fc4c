package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"photoframe/domain/commands"
	"photoframe/domain/contracts"
	"photoframe/domain/photos"
	"photoframe/domain/toasts"
	"photoframe/logging"
)

// ErrUnknownCommand is returned by Dispatch for command values it cannot route.
var ErrUnknownCommand = errors.New("unknown command")

// action carries the wording used in an action's notifications.
type action struct {
	name   string
	verb   string
	gerund string
}

var (
	uploadAction  = action{name: "upload", verb: "upload", gerund: "uploading"}
	convertAction = action{name: "convert", verb: "convert", gerund: "converting"}
	displayAction = action{name: "display", verb: "display", gerund: "displaying"}
	deleteAction  = action{name: "delete", verb: "delete", gerund: "deleting"}
)

// Dispatcher turns commands into backend calls. Each action ends in exactly one
// notification per affected file; list-mutating actions then refresh the grid.
// Errors returned from the entry points have already been shown to the user.
type Dispatcher struct {
	backend     contracts.PhotoBackend
	notifier    contracts.Notifier
	grid        GridRefresher
	diagnostics contracts.DiagnosticSink
	logger      *logging.Logger
}

// NewDispatcher creates an action dispatcher.
func NewDispatcher(
	backend contracts.PhotoBackend,
	notifier contracts.Notifier,
	grid GridRefresher,
	diagnostics contracts.DiagnosticSink,
) *Dispatcher {
	return &Dispatcher{
		backend:     backend,
		notifier:    notifier,
		grid:        grid,
		diagnostics: diagnostics,
		logger:      logging.Default().WithComponent("dispatcher"),
	}
}

// Dispatch routes a command to its entry point.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd commands.Command) error {
	switch c := cmd.(type) {
	case commands.Upload:
		return d.UploadMany(ctx, c.Files)
	case commands.Convert:
		return d.Convert(ctx, c.Filename)
	case commands.Display:
		return d.Display(ctx, c.Filename)
	case commands.Delete:
		return d.Delete(ctx, c.Filename)
	case commands.Refresh:
		return d.grid.Refresh(ctx)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

// UploadMany uploads the image files one at a time, in order, skipping
// anything that is not declared as an image. The grid is refreshed once,
// after the whole batch.
func (d *Dispatcher) UploadMany(ctx context.Context, files []commands.UploadFile) error {
	var errs []error
	uploaded := 0

	for _, file := range files {
		if !photos.IsImage(file.ContentType) {
			d.notifier.Notify(fmt.Sprintf("Skipped %s - not an image", file.Name), toasts.KindError)
			continue
		}
		if err := d.uploadOne(ctx, file); err != nil {
			errs = append(errs, err)
			continue
		}
		uploaded++
	}

	d.logger.Info("Upload batch finished",
		"files", len(files),
		"uploaded", uploaded,
		"failed", len(errs))

	if err := d.grid.Refresh(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) uploadOne(ctx context.Context, file commands.UploadFile) error {
	content, err := file.Open()
	if err != nil {
		return d.fail(ctx, uploadAction, file.Name, fmt.Errorf("open %s: %w", file.Name, err))
	}
	defer content.Close()

	if _, err := d.backend.Upload(ctx, file.Name, file.ContentType, content); err != nil {
		return d.fail(ctx, uploadAction, file.Name, err)
	}

	d.logger.Action("Photo uploaded", uploadAction.name, file.Name, "size", file.Size)
	d.notifier.Notify(fmt.Sprintf("Uploaded %s successfully", file.Name), toasts.KindSuccess)
	return nil
}

// Convert asks the backend to convert one photo, then refreshes the grid so
// its converted state shows.
func (d *Dispatcher) Convert(ctx context.Context, filename string) error {
	if _, err := d.backend.Convert(ctx, filename); err != nil {
		return d.fail(ctx, convertAction, filename, err)
	}

	d.logger.Action("Photo converted", convertAction.name, filename)
	d.notifier.Notify(fmt.Sprintf("Converted %s successfully", filename), toasts.KindSuccess)
	return d.grid.Refresh(ctx)
}

// Display pushes one photo to the e-ink display. The listing does not change,
// so the grid is not refreshed.
func (d *Dispatcher) Display(ctx context.Context, filename string) error {
	if _, err := d.backend.Display(ctx, filename); err != nil {
		return d.fail(ctx, displayAction, filename, err)
	}

	d.logger.Action("Photo sent to display", displayAction.name, filename)
	d.notifier.Notify(fmt.Sprintf("Sent %s to display", filename), toasts.KindSuccess)
	return nil
}

// Delete removes one photo, then refreshes the grid.
func (d *Dispatcher) Delete(ctx context.Context, filename string) error {
	if _, err := d.backend.Delete(ctx, filename); err != nil {
		return d.fail(ctx, deleteAction, filename, err)
	}

	d.logger.Action("Photo deleted", deleteAction.name, filename)
	d.notifier.Notify(fmt.Sprintf("Deleted %s successfully", filename), toasts.KindSuccess)
	return d.grid.Refresh(ctx)
}

// fail shows one error notification for the action and forwards the
// underlying error to the diagnostic channel.
func (d *Dispatcher) fail(ctx context.Context, a action, subject string, err error) error {
	d.notifier.Notify(failureMessage(a, subject, err), toasts.KindError)
	d.diagnostics.Report(ctx, a.name, subject, err)
	return err
}

// failureMessage surfaces server-reported error text verbatim. Transport and
// parse failures collapse to a generic message.
func failureMessage(a action, subject string, err error) string {
	if msg, ok := contracts.ServerMessage(err); ok {
		return fmt.Sprintf("Failed to %s %s: %s", a.verb, subject, msg)
	}

	var backendErr *contracts.BackendError
	if errors.As(err, &backendErr) {
		if text := http.StatusText(backendErr.StatusCode); text != "" {
			return fmt.Sprintf("Failed to %s %s: %s", a.verb, subject, text)
		}
	}

	return fmt.Sprintf("Error %s %s", a.gerund, subject)
}
