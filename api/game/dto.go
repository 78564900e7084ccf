// Package gameapi exposes maze sessions over HTTP.
package gameapi

import (
	"strings"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/game"
)

// CreateSessionRequest represents a request to start a session in a new maze.
type CreateSessionRequest struct {
	Width  int   `json:"width" binding:"required,min=1,max=100"`
	Height int   `json:"height" binding:"required,min=1,max=100"`
	Seed   int64 `json:"seed"`
}

// CommandsRequest carries commands to run in order.
type CommandsRequest struct {
	Commands []string `json:"commands" binding:"required,min=1"`
}

// TickRequest advances an animation by Count ticks, one when omitted.
type TickRequest struct {
	Count int `json:"count" binding:"omitempty,min=1,max=200"`
}

// AnimationResponse is the progress of a view transition.
type AnimationResponse struct {
	Height float64    `json:"height"`
	Step   float64    `json:"step"`
	Anchor [3]float64 `json:"anchor"`
}

// StateResponse is the player-visible state of a session.
type StateResponse struct {
	Pose      game.Pose           `json:"pose"`
	Cell      game.CellPosition   `json:"cell"`
	Mode      string              `json:"mode"`
	Animation *AnimationResponse  `json:"animation,omitempty"`
	Visited   []game.CellPosition `json:"visited"`
	Finished  bool                `json:"finished"`
	Stats     game.Stats          `json:"stats"`
}

// CreateSessionResponse is returned once a session is started.
type CreateSessionResponse struct {
	ID    string        `json:"id"`
	Token string        `json:"token"`
	State StateResponse `json:"state"`
}

// CommandsResponse reports how many commands changed the session.
type CommandsResponse struct {
	Applied int           `json:"applied"`
	State   StateResponse `json:"state"`
}

// MazeResponse lists the walls of every cell, indexed [row][col].
type MazeResponse struct {
	Rows  int               `json:"rows"`
	Cols  int               `json:"cols"`
	Start game.CellPosition `json:"start"`
	End   game.CellPosition `json:"end"`
	Walls [][][]string      `json:"walls"`
}

// RunResponse is one leaderboard entry.
type RunResponse struct {
	ID         string `json:"id"`
	Moves      int    `json:"moves"`
	Blocked    int    `json:"blocked"`
	Rotations  int    `json:"rotations"`
	Visited    int    `json:"visited"`
	DurationMS int64  `json:"duration_ms"`
}

func newStateResponse(s *game.Snapshot) StateResponse {
	resp := StateResponse{
		Pose:     s.Pose,
		Cell:     s.Pose.Cell(),
		Mode:     s.Mode.String(),
		Visited:  s.Visited,
		Finished: s.Finished,
		Stats:    s.Stats,
	}
	if resp.Visited == nil {
		resp.Visited = []game.CellPosition{}
	}
	if s.Animation != nil {
		resp.Animation = &AnimationResponse{
			Height: s.Animation.Height,
			Step:   s.Animation.Step,
			Anchor: s.Animation.Anchor,
		}
	}
	return resp
}

func newMazeResponse(l game.MazeLayout) MazeResponse {
	walls := make([][][]string, l.Rows)
	for r := range walls {
		walls[r] = make([][]string, l.Cols)
		for c := range walls[r] {
			names := []string{}
			for _, d := range game.Directions {
				if l.Walls[r*l.Cols+c].Has(d) {
					names = append(names, strings.ToLower(d.String()))
				}
			}
			walls[r][c] = names
		}
	}

	return MazeResponse{
		Rows:  l.Rows,
		Cols:  l.Cols,
		Start: l.Start,
		End:   l.End,
		Walls: walls,
	}
}

func newRunResponse(r *dmn.RunRecord) RunResponse {
	return RunResponse{
		ID:         r.ID.String(),
		Moves:      r.Moves,
		Blocked:    r.Blocked,
		Rotations:  r.Rotations,
		Visited:    r.Visited,
		DurationMS: r.Duration().Milliseconds(),
	}
}
