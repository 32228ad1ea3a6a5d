package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/kapu/boardwidget/internal/board"
)

const (
	fieldFlip       = "flip"
	fieldSquareSize = "square_size"
	fieldShowCoords = "show_coordinates"
)

// RedisStore keeps one hash per scope. Settings are durable, no TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) key(scope string) string {
	return "boardwidget:defaults:" + strings.TrimSpace(scope)
}

func (s *RedisStore) Defaults(ctx context.Context, scope string) (board.DisplayOptions, error) {
	opts := board.DefaultOptions()
	fields, err := s.rdb.HGetAll(ctx, s.key(scope)).Result()
	if err != nil {
		return opts, fmt.Errorf("load defaults: %w", err)
	}
	if len(fields) == 0 {
		return opts, nil
	}
	if v, ok := fields[fieldFlip]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Flip = b
		}
	}
	if v, ok := fields[fieldSquareSize]; ok {
		opts.SquareSize = board.ValidateSquareSizeString(v)
	}
	if v, ok := fields[fieldShowCoords]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.ShowCoordinates = b
		}
	}
	return sanitize(opts), nil
}

func (s *RedisStore) SaveDefaults(ctx context.Context, scope string, opts board.DisplayOptions) error {
	opts = sanitize(opts)
	err := s.rdb.HSet(ctx, s.key(scope),
		fieldFlip, strconv.FormatBool(opts.Flip),
		fieldSquareSize, strconv.Itoa(opts.SquareSize),
		fieldShowCoords, strconv.FormatBool(opts.ShowCoordinates),
	).Err()
	if err != nil {
		return fmt.Errorf("save defaults: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
