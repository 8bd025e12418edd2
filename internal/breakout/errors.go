package breakout

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTileData   = errors.New("breakout: invalid tile data")
	ErrEmptyLevel        = errors.New("breakout: level has no rows")
	ErrRaggedLevel       = errors.New("breakout: level rows differ in length")
	ErrStateNotSupported = errors.New("breakout: state not supported")
	ErrKeyOutOfRange     = errors.New("breakout: key code out of range")
	ErrLevelIndex        = errors.New("breakout: level index out of range")
)

// TileError reports a non-digit character in a level file. Line and Column
// are one-based and refer to the raw file text.
type TileError struct {
	Path   string
	Line   int
	Column int
	Char   rune
}

func (e *TileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid tile %q", e.Path, e.Line, e.Column, e.Char)
}

func (e *TileError) Unwrap() error { return ErrInvalidTileData }

// RaggedRowError reports a row whose tile count differs from the first row.
type RaggedRowError struct {
	Path string
	Line int
	Got  int
	Want int
}

func (e *RaggedRowError) Error() string {
	return fmt.Sprintf("%s:%d: row has %d tiles, want %d", e.Path, e.Line, e.Got, e.Want)
}

func (e *RaggedRowError) Unwrap() error { return ErrRaggedLevel }

// StateError reports a frame operation called in a state that has no
// behavior yet.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("breakout: %s in state %s: not supported", e.Op, e.State)
}

func (e *StateError) Unwrap() error { return ErrStateNotSupported }

// KeyError reports a key code outside the key-state table.
type KeyError struct {
	Code int
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("breakout: key code %d outside [0,%d)", e.Code, NumKeys)
}

func (e *KeyError) Unwrap() error { return ErrKeyOutOfRange }
