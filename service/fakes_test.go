package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/google/uuid"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func (l *recordingLogger) Info(msg string)    { l.add("INFO", msg) }
func (l *recordingLogger) Warning(msg string) { l.add("WARNING", msg) }
func (l *recordingLogger) Error(msg string)   { l.add("ERROR", msg) }

type memoryCache struct {
	mu       sync.Mutex
	entries  map[string][]byte
	computed int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Do(_ context.Context, key string, compute func() ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.entries[key]; ok {
		return val, nil
	}
	val, err := compute()
	if err != nil {
		return nil, err
	}
	c.computed++
	c.entries[key] = val
	return val, nil
}

type memoryRunRepo struct {
	mu      sync.Mutex
	runs    map[uuid.UUID]*dmn.Run
	saveErr error
}

func newMemoryRunRepo() *memoryRunRepo {
	return &memoryRunRepo{runs: make(map[uuid.UUID]*dmn.Run)}
}

func (r *memoryRunRepo) Save(_ context.Context, run *dmn.Run) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	return nil
}

func (r *memoryRunRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, dmn.ErrRunNotFound
	}
	return run, nil
}

func (r *memoryRunRepo) ByUser(_ context.Context, userID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	runs := make([]*dmn.Run, 0)
	for _, run := range r.runs {
		if run.UserID == userID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].CreatedAt.After(runs[b].CreatedAt) })
	if int64(len(runs)) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*dmn.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memoryUserRepo) Save(user *dmn.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Username == user.Username && id != user.ID {
			return dmn.ErrUsernameTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, dmn.ErrUserNotFound
}

func (r *memoryUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
	err    error
}

func (t *stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.claims = claims
	return "signed-token", nil
}

func (t *stubTokenizer) Decode(token string) (map[string]interface{}, error) {
	if token != "signed-token" {
		return nil, errors.New("invalid token")
	}
	return t.claims, nil
}
