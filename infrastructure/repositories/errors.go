package repositories

import "fmt"

// ErrInvalidLimit occurs when a listing is requested with a non-positive limit
type ErrInvalidLimit struct {
	Limit int
}

func (e ErrInvalidLimit) Error() string {
	return fmt.Sprintf("invalid listing limit %d: must be positive", e.Limit)
}
