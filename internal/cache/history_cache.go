package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

// Stack names one side of a survey's edit history
type Stack string

const (
	Undo Stack = "undo"
	Redo Stack = "redo"
)

// HistoryCache handles Redis operations for per-survey undo/redo snapshots
type HistoryCache interface {
	Push(ctx context.Context, surveyID string, stack Stack, survey *model.Survey) error
	// Pop returns nil when the stack is empty
	Pop(ctx context.Context, surveyID string, stack Stack) (*model.Survey, error)
	Len(ctx context.Context, surveyID string, stack Stack) (int64, error)
	Clear(ctx context.Context, surveyID string, stacks ...Stack) error
}

type historyCache struct {
	client *redis.Client
	limit  int64
	ttl    time.Duration
}

// NewHistoryCache creates a history cache keeping at most limit snapshots
// per stack
func NewHistoryCache(client *redis.Client, limit int, ttl time.Duration) HistoryCache {
	return &historyCache{
		client: client,
		limit:  int64(limit),
		ttl:    ttl,
	}
}

func (c *historyCache) key(surveyID string, stack Stack) string {
	return fmt.Sprintf("survey:%s:%s", surveyID, stack)
}

func (c *historyCache) Push(ctx context.Context, surveyID string, stack Stack, survey *model.Survey) error {
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	key := c.key(surveyID, stack)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, c.limit-1)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *historyCache) Pop(ctx context.Context, surveyID string, stack Stack) (*model.Survey, error) {
	data, err := c.client.LPop(ctx, c.key(surveyID, stack)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var survey model.Survey
	if err := json.Unmarshal([]byte(data), &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *historyCache) Len(ctx context.Context, surveyID string, stack Stack) (int64, error) {
	return c.client.LLen(ctx, c.key(surveyID, stack)).Result()
}

func (c *historyCache) Clear(ctx context.Context, surveyID string, stacks ...Stack) error {
	if len(stacks) == 0 {
		stacks = []Stack{Undo, Redo}
	}
	keys := make([]string, len(stacks))
	for i, stack := range stacks {
		keys[i] = c.key(surveyID, stack)
	}
	return c.client.Del(ctx, keys...).Err()
}
