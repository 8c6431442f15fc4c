package photos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid_JoinsStatusByFilename(t *testing.T) {
	listing := []PhotoInfo{
		{Filename: "a.jpg", Path: "/photos/originals/a.jpg"},
		{Filename: "b.jpg", Path: "/photos/originals/b.jpg"},
	}
	status := &PhotoStatus{
		TotalPhotos:     2,
		ConvertedPhotos: 1,
		Photos:          []PhotoConversion{{Filename: "a.jpg", Converted: true}},
	}

	grid := BuildGrid(listing, status)

	require.Len(t, grid.Cells, 2)
	assert.True(t, grid.StatusAware)

	a, ok := grid.Cells[0].Control(ActionConvert)
	require.True(t, ok)
	assert.Equal(t, "a.jpg", grid.Cells[0].Photo.Filename)
	assert.True(t, grid.Cells[0].Converted)
	assert.True(t, a.Disabled)
	assert.Equal(t, "Converted", a.Label)

	b, ok := grid.Cells[1].Control(ActionConvert)
	require.True(t, ok)
	assert.Equal(t, "b.jpg", grid.Cells[1].Photo.Filename)
	assert.False(t, grid.Cells[1].Converted)
	assert.False(t, b.Disabled)
	assert.Equal(t, "Convert", b.Label)
}

func TestBuildGrid_KeepsListingOrder(t *testing.T) {
	listing := []PhotoInfo{{Filename: "z.png"}, {Filename: "a.png"}, {Filename: "m.png"}}

	grid := BuildGrid(listing, &PhotoStatus{})

	var names []string
	for _, c := range grid.Cells {
		names = append(names, c.Photo.Filename)
	}
	assert.Equal(t, []string{"z.png", "a.png", "m.png"}, names)
}

func TestBuildGrid_SimpleVariantOffersDeleteOnly(t *testing.T) {
	grid := BuildGrid([]PhotoInfo{{Filename: "a.jpg"}}, nil)

	require.Len(t, grid.Cells, 1)
	assert.False(t, grid.StatusAware)
	assert.Equal(t, []ActionControl{{Kind: ActionDelete, Label: "Delete"}}, grid.Cells[0].Actions)
	_, ok := grid.Cells[0].Control(ActionConvert)
	assert.False(t, ok)
}

func TestBuildGrid_StatusForUnlistedPhotoIsIgnored(t *testing.T) {
	status := &PhotoStatus{Photos: []PhotoConversion{{Filename: "gone.jpg", Converted: true}}}

	grid := BuildGrid([]PhotoInfo{{Filename: "a.jpg"}}, status)

	require.Len(t, grid.Cells, 1)
	assert.False(t, grid.Cells[0].Converted)
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"image/png", true},
		{"IMAGE/HEIC", false},
		{" image/png", false},
		{"application/pdf", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsImage(tt.contentType))
		})
	}
}
