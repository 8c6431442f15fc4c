package photos

// ActionKind identifies a per-photo action control.
type ActionKind string

const (
	ActionConvert ActionKind = "convert"
	ActionDisplay ActionKind = "display"
	ActionDelete  ActionKind = "delete"
)

// ActionControl is a single button rendered in a grid cell.
type ActionControl struct {
	Kind     ActionKind
	Label    string
	Disabled bool
}

// GridCell is the rendered state of one listed photo.
type GridCell struct {
	Photo     PhotoInfo
	Converted bool
	Actions   []ActionControl
}

// Grid is a full rendering of the photo listing. It replaces any previous
// grid as a whole.
type Grid struct {
	Cells           []GridCell
	StatusAware     bool
	TotalPhotos     int
	ConvertedPhotos int
}

// BuildGrid joins a listing against an optional status report by filename.
// A nil status yields the simple variant, where only delete is offered.
func BuildGrid(listing []PhotoInfo, status *PhotoStatus) Grid {
	grid := Grid{
		Cells:       make([]GridCell, 0, len(listing)),
		StatusAware: status != nil,
		TotalPhotos: len(listing),
	}

	if status == nil {
		for _, photo := range listing {
			grid.Cells = append(grid.Cells, GridCell{
				Photo:   photo,
				Actions: []ActionControl{deleteControl()},
			})
		}
		return grid
	}

	grid.TotalPhotos = status.TotalPhotos
	grid.ConvertedPhotos = status.ConvertedPhotos

	converted := status.ConvertedIndex()
	for _, photo := range listing {
		isConverted := converted[photo.Filename]
		grid.Cells = append(grid.Cells, GridCell{
			Photo:     photo,
			Converted: isConverted,
			Actions: []ActionControl{
				convertControl(isConverted),
				{Kind: ActionDisplay, Label: "Display"},
				deleteControl(),
			},
		})
	}
	return grid
}

// Control returns the control of the given kind, if the cell has one.
func (c GridCell) Control(kind ActionKind) (ActionControl, bool) {
	for _, a := range c.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return ActionControl{}, false
}

func convertControl(converted bool) ActionControl {
	if converted {
		return ActionControl{Kind: ActionConvert, Label: "Converted", Disabled: true}
	}
	return ActionControl{Kind: ActionConvert, Label: "Convert"}
}

func deleteControl() ActionControl {
	return ActionControl{Kind: ActionDelete, Label: "Delete"}
}
