package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/voicecart/internal/db"
)

// unlinkBatch bounds the number of keys per UNLINK call.
const unlinkBatch = 500

// HSetTracked writes hash fields at key and adds member to the set at setKey inside a
// single MULTI/EXEC, so a record is never visible without its tracking entry.
// Fields named in drop are deleted first; HSET alone would leave them in place.
func (s *Store) HSetTracked(
	ctx context.Context, key string, fields map[string]string, drop []string, setKey, member string,
) error {
	if len(fields) == 0 {
		return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("key %s: no fields", key)}
	}

	hset := s.b().Hset().Key(key).FieldValue()
	for k, v := range fields {
		hset = hset.FieldValue(k, v)
	}

	cmds := make(rueidis.Commands, 0, 5)
	cmds = append(cmds, s.b().Multi().Build())
	if len(drop) > 0 {
		cmds = append(cmds, s.b().Hdel().Key(key).Field(drop...).Build())
	}
	cmds = append(cmds,
		hset.Build(),
		s.b().Sadd().Key(setKey).Member(member).Build(),
		s.b().Exec().Build(),
	)

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		err := res.Error()
		if err == nil {
			continue
		}
		if i == len(results)-1 && rueidis.IsRedisNil(err) {
			err = errors.New("transaction aborted")
		}
		return &db.Error{Op: db.OpMulti, Err: fmt.Errorf("key %s: %w", key, err)}
	}
	return nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}

// HGetAllMulti pipelines HGETALL for every key, preserving key order.
func (s *Store) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make(rueidis.Commands, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Hgetall().Key(key).Build()
	}

	out := make([]map[string]string, len(keys))
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		m, err := res.AsStrMap()
		if err != nil {
			return nil, &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("key %s: %w", keys[i], err)}
		}
		out[i] = m
	}
	return out, nil
}

// Unlink removes keys asynchronously, at most unlinkBatch keys per call.
func (s *Store) Unlink(ctx context.Context, keys ...string) error {
	for start := 0; start < len(keys); start += unlinkBatch {
		end := min(start+unlinkBatch, len(keys))
		cmd := s.b().Unlink().Key(keys[start:end]...).Build()
		if err := s.do(ctx, cmd).Error(); err != nil {
			return &db.Error{Op: db.OpUnlink, Err: err}
		}
	}
	return nil
}

// Scan walks the keyspace for keys matching pattern.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(200).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, &db.Error{Op: db.OpScan, Err: err}
		}
		keys = append(keys, res.Elements...)
		if cursor = res.Cursor; cursor == 0 {
			return keys, nil
		}
	}
}
