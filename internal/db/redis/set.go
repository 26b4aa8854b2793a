package redis

import (
	"context"
	"errors"

	"github.com/kailas-cloud/voicecart/internal/db"
)

// SRandMember returns up to count distinct random members. A positive count never repeats members.
func (s *Store) SRandMember(ctx context.Context, key string, count int) ([]string, error) {
	if count <= 0 {
		return nil, &db.Error{Op: db.OpSRandMember, Err: errors.New("count must be positive")}
	}
	cmd := s.b().Srandmember().Key(key).Count(int64(count)).Build()
	members, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSRandMember, Err: err}
	}
	return members, nil
}
