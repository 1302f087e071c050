package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"meeting-minutes-go/internal/record"
)

const (
	recordKeyPrefix = "meeting:"
	indexKey        = "meetings:index"
)

type redisStore struct {
	rdb *redis.Client
}

// NewRedis creates a Store that keeps each record as a JSON blob plus a
// set of known ids for listing.
func NewRedis(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func recordKey(id string) string {
	return recordKeyPrefix + id
}

func (s *redisStore) Get(ctx context.Context, id string) (*record.MeetingRecord, error) {
	data, err := s.rdb.Get(ctx, recordKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}

	var rec record.MeetingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *redisStore) Save(ctx context.Context, rec *record.MeetingRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, recordKey(rec.ID), payload, 0)
	pipe.SAdd(ctx, indexKey, rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	return nil
}

// ClaimProcessing uses WATCH so two concurrent claimers cannot both move
// the record into processing.
func (s *redisStore) ClaimProcessing(ctx context.Context, id string) (*record.MeetingRecord, error) {
	key := recordKey(id)
	var claimed *record.MeetingRecord

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				return ErrNotFound
			}
			return err
		}

		var rec record.MeetingRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("decode record %s: %w", id, err)
		}
		if rec.Status == record.StatusProcessing {
			return ErrAlreadyProcessing
		}

		rec.Status = record.StatusProcessing
		rec.Progress = 0
		rec.ErrorMessage = ""
		rec.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(&rec)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}
		claimed = &rec
		return nil
	}

	for {
		err := s.rdb.Watch(ctx, txn, key)
		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return claimed, nil
	}
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	pipe := s.rdb.TxPipeline()
	del := pipe.Del(ctx, recordKey(id))
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *redisStore) List(ctx context.Context, opts ListOptions) ([]*record.MeetingRecord, int, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	var all []*record.MeetingRecord
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if err != nil {
			if err == ErrNotFound {
				// Index can lag behind a delete; skip stale ids.
				continue
			}
			return nil, 0, err
		}
		if opts.Status != "" && rec.Status != opts.Status {
			continue
		}
		all = append(all, rec)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return paginate(all, opts), len(all), nil
}
