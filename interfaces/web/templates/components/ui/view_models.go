package ui

// ToastView is the view model for one notification.
type ToastView struct {
	ID    string
	Text  string
	Kind  string
	State string
}

// ActionView is one action button in a photo card.
type ActionView struct {
	Kind     string
	Label    string
	URL      string
	Disabled bool
}

// PhotoCardView is a single photo in the grid.
type PhotoCardView struct {
	Filename    string
	ImageURL    string
	StatusLabel string
	Converted   bool
	Actions     []ActionView
}

// GridView is the view model for the whole photo grid.
type GridView struct {
	Cards       []PhotoCardView
	StatusAware bool
	Summary     string
}

// PageView is the view model for the console page. A nil Grid renders a loading placeholder.
type PageView struct {
	Title  string
	Grid   *GridView
	Toasts []ToastView
}
