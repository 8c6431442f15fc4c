package presenters

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"photoframe/domain/photos"
	"photoframe/interfaces/web/templates/components/ui"
)

const originalsPath = "/photos/originals/"

// GridPresenter transforms a photo grid into UI-ready view models.
type GridPresenter struct {
	mediaBaseURL string
}

// NewGridPresenter creates a grid presenter. Relative photo paths are resolved
// against mediaBaseURL, which is normally the photo backend address.
func NewGridPresenter(mediaBaseURL string) *GridPresenter {
	return &GridPresenter{mediaBaseURL: strings.TrimRight(mediaBaseURL, "/")}
}

// ToGridView converts a grid to its view model.
func (p *GridPresenter) ToGridView(grid photos.Grid) ui.GridView {
	view := ui.GridView{
		Cards:       make([]ui.PhotoCardView, 0, len(grid.Cells)),
		StatusAware: grid.StatusAware,
	}
	if grid.StatusAware {
		view.Summary = fmt.Sprintf("%d of %d photos converted", grid.ConvertedPhotos, grid.TotalPhotos)
	}

	for _, cell := range grid.Cells {
		view.Cards = append(view.Cards, p.toCard(cell, grid.StatusAware))
	}
	return view
}

// FormatGrid renders the grid to an HTML fragment.
func (p *GridPresenter) FormatGrid(grid photos.Grid) (string, error) {
	var buf strings.Builder
	if err := ui.PhotoGrid(p.ToGridView(grid)).Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (p *GridPresenter) toCard(cell photos.GridCell, statusAware bool) ui.PhotoCardView {
	card := ui.PhotoCardView{
		Filename:  cell.Photo.Filename,
		ImageURL:  p.imageURL(cell.Photo),
		Converted: cell.Converted,
		Actions:   make([]ui.ActionView, 0, len(cell.Actions)),
	}
	if statusAware && cell.Converted {
		card.StatusLabel = "Converted"
	}

	escaped := url.PathEscape(cell.Photo.Filename)
	for _, a := range cell.Actions {
		card.Actions = append(card.Actions, ui.ActionView{
			Kind:     string(a.Kind),
			Label:    a.Label,
			URL:      "/actions/" + string(a.Kind) + "/" + escaped,
			Disabled: a.Disabled,
		})
	}
	return card
}

func (p *GridPresenter) imageURL(photo photos.PhotoInfo) string {
	path := photo.Path
	switch {
	case path == "":
		path = originalsPath + url.PathEscape(photo.Filename)
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case !strings.HasPrefix(path, "/"):
		path = "/" + path
	}
	return p.mediaBaseURL + path
}
