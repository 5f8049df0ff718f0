package ui

import (
	"testing"

	"github.com/Faultbox/surfview/internal/frame"
	"github.com/Faultbox/surfview/pkg/surface"
)

func TestGridValue(t *testing.T) {
	tests := []struct {
		name   string
		family surface.Family
		grid   int
		want   int
	}{
		{"pseudosphere natural", surface.FamilyPseudosphere, 0, 100},
		{"klein natural", surface.FamilyKleinBottle, 0, 36},
		{"sphere natural", surface.FamilySphere, 0, 17},
		{"explicit", surface.FamilyPseudosphere, 40, 40},
		{"unknown family", surface.Family(99), 0, frame.MinGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := frame.DefaultParams()
			p.Family = tt.family
			p.Grid = tt.grid
			if got := gridValue(&p); got != tt.want {
				t.Errorf("gridValue() = %d, want %d", got, tt.want)
			}
		})
	}
}
