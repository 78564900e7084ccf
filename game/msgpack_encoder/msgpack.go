package mp

import (
	"fmt"

	"github.com/beka-birhanu/vinom-explorer/game"
	"github.com/vmihailenco/msgpack/v5"
)

var _ game.Encoder = &Msgpack{}

// Msgpack encodes snapshots with MessagePack.
type Msgpack struct{}

// MarshalSnapshot implements game.Encoder.
func (m *Msgpack) MarshalSnapshot(s game.Snapshot) ([]byte, error) {
	return msgpack.Marshal(&s)
}

// UnmarshalSnapshot implements game.Encoder.
func (m *Msgpack) UnmarshalSnapshot(b []byte) (game.Snapshot, error) {
	var s game.Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %w", game.ErrCorruptSnapshot, err)
	}
	return s, nil
}
