package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestCollisionDetector(t *testing.T) {
	m := newGridMaze(1, 1, cell(0, 0), cell(0, 0)).wall(cell(0, 0), North, East)
	d := NewCollisionDetector(m, testSettings())

	// Wall planes sit at 0.95 on the North and East sides.
	tests := []struct {
		name    string
		point   mgl64.Vec3
		collide bool
	}{
		{"Center is clear", mgl64.Vec3{0.5, 0.5, 0.5}, false},
		{"Near North wall", mgl64.Vec3{0.5, 0.5, 0.8}, true},
		{"Near East wall", mgl64.Vec3{0.8, 0.5, 0.5}, true},
		{"Beyond threshold of North wall", mgl64.Vec3{0.5, 0.5, 0.7}, false},
		{"Beyond threshold of East wall", mgl64.Vec3{0.7, 0.5, 0.5}, false},
		{"Near missing South wall", mgl64.Vec3{0.5, 0.5, 0.05}, false},
		{"Near missing West wall", mgl64.Vec3{0.05, 0.5, 0.5}, false},
		{"Inset faces the interior", mgl64.Vec3{0.78, 0.5, 0.5}, true},
		{"Height is ignored", mgl64.Vec3{0.8, 7, 0.5}, true},
		{"Outside the grid", mgl64.Vec3{-0.5, 0.5, 0.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.collide, d.Collides(tt.point))
		})
	}
}

func TestCollisionUsesOwningCell(t *testing.T) {
	// Only the left cell has an East wall; a point on the shared boundary
	// belongs to the right cell, which is open.
	m := newGridMaze(1, 2, cell(0, 0), cell(0, 1)).wall(cell(0, 0), East)
	d := NewCollisionDetector(m, testSettings())

	assert.Equal(t, cell(0, 1), CellAt(mgl64.Vec3{1, 0, 0.5}))
	assert.False(t, d.Collides(mgl64.Vec3{1, 0.5, 0.5}))
	assert.True(t, d.Collides(mgl64.Vec3{0.99, 0.5, 0.5}))
}

func TestCollisionNearestPointIsClampedToWall(t *testing.T) {
	m := newGridMaze(2, 2, cell(0, 0), cell(1, 1)).wall(cell(0, 0), North)
	d := NewCollisionDetector(m, testSettings())

	assert.InDelta(t, 0.15, d.distanceToWall(mgl64.Vec3{0.5, 0, 0.8}, cell(0, 0), North), 1e-9)
	assert.InDelta(t, 0.05, d.distanceToWall(mgl64.Vec3{0.5, 0, 1.0}, cell(0, 0), North), 1e-9)
}
