package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const artifactTTL = 15 * time.Minute

// StoreArtifact caches the active artifact blob and its version for a model
// key so lookups avoid hitting Postgres on every request.
func StoreArtifact(ctx context.Context, client *redis.Client, modelKey string, version int, blob []byte) error {
	if client == nil {
		return nil
	}
	pipe := client.Pipeline()
	pipe.Set(ctx, artifactKey(modelKey), blob, artifactTTL)
	pipe.Set(ctx, artifactVersionKey(modelKey), version, artifactTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// FetchArtifact returns the cached blob and version, or ok=false on a miss.
func FetchArtifact(ctx context.Context, client *redis.Client, modelKey string) (blob []byte, version int, ok bool, err error) {
	if client == nil {
		return nil, 0, false, nil
	}
	blob, err = client.Get(ctx, artifactKey(modelKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	raw, err := client.Get(ctx, artifactVersionKey(modelKey)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, 0, false, nil
		}
		return nil, 0, false, err
	}
	version, err = strconv.Atoi(raw)
	if err != nil {
		return nil, 0, false, fmt.Errorf("corrupt cached version %q: %w", raw, err)
	}
	return blob, version, true, nil
}

func artifactKey(modelKey string) string {
	return "model:artifact:" + modelKey
}

func artifactVersionKey(modelKey string) string {
	return "model:artifact-version:" + modelKey
}
