package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-classic/internal/input"
)

func TestKeysFrom(t *testing.T) {
	tests := []struct {
		name string
		down []ebiten.Key
		want input.Keys
	}{
		{"nothing", nil, input.Keys{}},
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowUp}, input.Keys{Left: true, Thrust: true}},
		{"letters", []ebiten.Key{ebiten.KeyD, ebiten.KeyW}, input.Keys{Right: true, Thrust: true}},
		{"fire", []ebiten.Key{ebiten.KeySpace}, input.Keys{Fire: true}},
		{"unbound", []ebiten.Key{ebiten.KeyZ}, input.Keys{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed := func(k ebiten.Key) bool {
				for _, d := range tt.down {
					if d == k {
						return true
					}
				}
				return false
			}
			if got := keysFrom(pressed); got != tt.want {
				t.Errorf("keysFrom = %+v, want %+v", got, tt.want)
			}
		})
	}
}
