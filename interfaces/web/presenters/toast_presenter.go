package presenters

import (
	"context"
	"strings"

	"photoframe/domain/toasts"
	"photoframe/interfaces/web/templates/components/ui"
)

// ToastPresenter handles toast notification view logic and formatting.
type ToastPresenter struct{}

// NewToastPresenter creates a new toast presenter.
func NewToastPresenter() *ToastPresenter {
	return &ToastPresenter{}
}

// ToView converts a toast into its view model.
func (p *ToastPresenter) ToView(toast toasts.Toast) ui.ToastView {
	return ui.ToastView{
		ID:    toast.ID,
		Text:  toast.Text,
		Kind:  string(toast.Kind),
		State: string(toast.State),
	}
}

// ToViews converts toasts still on screen, skipping removed ones.
func (p *ToastPresenter) ToViews(items []toasts.Toast) []ui.ToastView {
	views := make([]ui.ToastView, 0, len(items))
	for _, t := range items {
		if t.State == toasts.StateRemoved {
			continue
		}
		views = append(views, p.ToView(t))
	}
	return views
}

// FormatToastNotification renders a toast to an HTML fragment.
func (p *ToastPresenter) FormatToastNotification(toast toasts.Toast) (string, error) {
	var buf strings.Builder
	if err := ui.ToastNotification(p.ToView(toast)).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
