// Package pb encodes mazes and routes in the protobuf wire format.
//
//	message Maze {
//	  uint32 width  = 1;
//	  uint32 height = 2;
//	  repeated uint32 walls = 3 [packed = true]; // x-major
//	  bytes  id     = 4;
//	}
//
//	message Position { uint32 x = 1; uint32 y = 2; }
//	message Route    { repeated Position cells = 1; }
package pb

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const contentType = "application/x-protobuf"

const (
	mazeWidthField  protowire.Number = 1
	mazeHeightField protowire.Number = 2
	mazeWallsField  protowire.Number = 3
	mazeIDField     protowire.Number = 4

	positionXField protowire.Number = 1
	positionYField protowire.Number = 2

	routeCellsField protowire.Number = 1
)

var (
	ErrMalformed = errors.New("malformed protobuf payload")
)

var _ i.MazeEncoder = &Protobuf{}

type Protobuf struct{}

// ContentType implements i.MazeEncoder.
func (p *Protobuf) ContentType() string {
	return contentType
}

// MarshalMaze implements i.MazeEncoder.
func (p *Protobuf) MarshalMaze(m *maze.Maze) ([]byte, error) {
	var walls []byte
	for _, w := range m.Walls() {
		walls = protowire.AppendVarint(walls, uint64(w))
	}

	id := m.ID()
	var b []byte
	b = appendVarintField(b, mazeWidthField, uint64(m.Width()))
	b = appendVarintField(b, mazeHeightField, uint64(m.Height()))
	b = appendBytesField(b, mazeWallsField, walls)
	b = appendBytesField(b, mazeIDField, id[:])
	return b, nil
}

// UnmarshalMaze implements i.MazeEncoder.
// Only perfect mazes are accepted; anything else fails with maze.ErrNotPerfect.
func (p *Protobuf) UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var (
		width, height int
		walls         []maze.WallState
		id            uuid.UUID
	)

	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		switch {
		case num == mazeWidthField && typ == protowire.VarintType:
			n, read := protowire.ConsumeVarint(v)
			width = int(n)
			return read, nil
		case num == mazeHeightField && typ == protowire.VarintType:
			n, read := protowire.ConsumeVarint(v)
			height = int(n)
			return read, nil
		case num == mazeWallsField && typ == protowire.BytesType:
			packed, read := protowire.ConsumeBytes(v)
			if read < 0 {
				return read, nil
			}
			for len(packed) > 0 {
				w, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return n, nil
				}
				if w > math.MaxUint8 {
					return 0, fmt.Errorf("%w: wall state %d", ErrMalformed, w)
				}
				walls = append(walls, maze.WallState(w))
				packed = packed[n:]
			}
			return read, nil
		case num == mazeIDField && typ == protowire.BytesType:
			raw, read := protowire.ConsumeBytes(v)
			if read < 0 {
				return read, nil
			}
			parsed, err := uuid.FromBytes(raw)
			if err != nil {
				return 0, fmt.Errorf("%w: maze id: %s", ErrMalformed, err)
			}
			id = parsed
			return read, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, v), nil
		}
	})
	if err != nil {
		return nil, err
	}

	m, err := maze.Restore(id, width, height, walls)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalRoute implements i.MazeEncoder.
func (p *Protobuf) MarshalRoute(r maze.Route) ([]byte, error) {
	var b []byte
	for _, pos := range r.Positions() {
		var cell []byte
		cell = appendVarintField(cell, positionXField, uint64(pos.X))
		cell = appendVarintField(cell, positionYField, uint64(pos.Y))
		b = appendBytesField(b, routeCellsField, cell)
	}
	return b, nil
}

// UnmarshalRoute implements i.MazeEncoder.
func (p *Protobuf) UnmarshalRoute(b []byte) ([]maze.Position, error) {
	positions := []maze.Position{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
		if num != routeCellsField || typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, v), nil
		}

		raw, read := protowire.ConsumeBytes(v)
		if read < 0 {
			return read, nil
		}

		var pos maze.Position
		err := consumeFields(raw, func(num protowire.Number, typ protowire.Type, v []byte) (int, error) {
			if typ != protowire.VarintType {
				return protowire.ConsumeFieldValue(num, typ, v), nil
			}
			n, read := protowire.ConsumeVarint(v)
			switch num {
			case positionXField:
				pos.X = int(n)
			case positionYField:
				pos.Y = int(n)
			}
			return read, nil
		})
		if err != nil {
			return 0, err
		}

		positions = append(positions, pos)
		return read, nil
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// consumeFields walks the top level fields of b. field consumes one value and returns
// the number of bytes read, negative on a wire error.
func consumeFields(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %s", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		m, err := field(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 {
			return fmt.Errorf("%w: %s", ErrMalformed, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
