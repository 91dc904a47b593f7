package redis

import (
	"context"

	"github.com/kailas-cloud/devindex/internal/db"
)

// CreateIndex runs FT.CREATE for def.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	cmd := s.b().Arbitrary(db.CmdCreateIndex).Args(def.Args()...).Build()
	err := s.do(ctx, cmd).Error()
	switch {
	case err == nil:
		return nil
	case replyMatches(err, replyIndexExists):
		return db.ErrIndexExists
	default:
		return &db.Error{Cmd: db.CmdCreateIndex, Target: def.Name, Err: err}
	}
}

// DropIndex removes an FT index. Document hashes are kept.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary(db.CmdDropIndex).Args(name).Build()
	err := s.do(ctx, cmd).Error()
	switch {
	case err == nil:
		return nil
	case replyMatches(err, replyUnknownIndex):
		return db.ErrIndexNotFound
	default:
		return &db.Error{Cmd: db.CmdDropIndex, Target: name, Err: err}
	}
}

// IndexExists asks FT.INFO about the index.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary(db.CmdIndexInfo).Args(name).Build()
	err := s.do(ctx, cmd).Error()
	switch {
	case err == nil:
		return true, nil
	case replyMatches(err, replyUnknownIndex):
		return false, nil
	default:
		return false, &db.Error{Cmd: db.CmdIndexInfo, Target: name, Err: err}
	}
}
