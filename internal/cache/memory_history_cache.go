package cache

import (
	"context"
	"sync"

	"github.com/TamyresLucas/New-Survey-builder-sub002/internal/model"
)

type memoryHistoryCache struct {
	mu     sync.Mutex
	limit  int
	stacks map[string][]*model.Survey
}

// NewMemoryHistoryCache creates a process-local history keeping at most
// limit snapshots per stack. Entries never expire.
func NewMemoryHistoryCache(limit int) HistoryCache {
	return &memoryHistoryCache{
		limit:  limit,
		stacks: make(map[string][]*model.Survey),
	}
}

func (c *memoryHistoryCache) key(surveyID string, stack Stack) string {
	return surveyID + ":" + string(stack)
}

func (c *memoryHistoryCache) Push(_ context.Context, surveyID string, stack Stack, survey *model.Survey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(surveyID, stack)
	entries := append(c.stacks[k], survey.Clone())
	if len(entries) > c.limit {
		entries = entries[len(entries)-c.limit:]
	}
	c.stacks[k] = entries
	return nil
}

func (c *memoryHistoryCache) Pop(_ context.Context, surveyID string, stack Stack) (*model.Survey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := c.key(surveyID, stack)
	entries := c.stacks[k]
	if len(entries) == 0 {
		return nil, nil
	}
	top := entries[len(entries)-1]
	c.stacks[k] = entries[:len(entries)-1]
	return top, nil
}

func (c *memoryHistoryCache) Len(_ context.Context, surveyID string, stack Stack) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.stacks[c.key(surveyID, stack)])), nil
}

func (c *memoryHistoryCache) Clear(_ context.Context, surveyID string, stacks ...Stack) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(stacks) == 0 {
		stacks = []Stack{Undo, Redo}
	}
	for _, stack := range stacks {
		delete(c.stacks, c.key(surveyID, stack))
	}
	return nil
}
