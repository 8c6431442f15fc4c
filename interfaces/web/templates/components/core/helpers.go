// Package core holds small class helpers shared by the UI components.
package core

import "strings"

// ToastClass returns the CSS classes for a toast of the given kind and state.
func ToastClass(kind, state string) string {
	classes := []string{"status-message", kind}
	switch state {
	case "pending", "hiding":
		classes = append(classes, state)
	}
	return strings.Join(classes, " ")
}

// ButtonClass returns the CSS classes for a grid action button.
func ButtonClass(kind string, disabled bool) string {
	classes := "action-btn " + kind + "-btn"
	if disabled {
		classes += " is-disabled"
	}
	return classes
}
