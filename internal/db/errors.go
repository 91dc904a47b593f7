package db

import (
	"errors"
	"fmt"
)

// Sentinel errors for index lifecycle calls.
var (
	ErrIndexNotFound = errors.New("db: index not found")
	ErrIndexExists   = errors.New("db: index already exists")
)

// Engine command names, used as Error.Cmd.
const (
	CmdCreateIndex = "FT.CREATE"
	CmdDropIndex   = "FT.DROPINDEX"
	CmdIndexInfo   = "FT.INFO"
	CmdSearch      = "FT.SEARCH"
	CmdAggregate   = "FT.AGGREGATE"
	CmdDel         = "DEL"
	CmdHSet        = "HSET"
)

// Error is a failed engine command. Target names the index or key it ran against.
type Error struct {
	Cmd    string
	Target string
	Err    error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Cmd, e.Target, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
