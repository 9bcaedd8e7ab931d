package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/Munazil1/centswise/internal/security"
)

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Load(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// FileTokenStore keeps the token in a file readable only by the owner.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Load(_ context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileTokenStore) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type storedToken struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// RedisTokenStore keeps the token under one key. The key expires together
// with the token when the token carries an expiry.
type RedisTokenStore struct {
	client *redis.Client
	key    string
}

func NewRedisTokenStore(addr, password string, db int, key string) *RedisTokenStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisTokenStore{client: client, key: key}
}

func (r *RedisTokenStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisTokenStore) Close() error {
	return r.client.Close()
}

func (r *RedisTokenStore) Load(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var st storedToken
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return "", err
	}
	return st.Token, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, token string) error {
	now := time.Now()
	payload, err := json.Marshal(storedToken{Token: token, SavedAt: now})
	if err != nil {
		return err
	}
	var ttl time.Duration
	if claims, err := security.InspectToken(token, now); err == nil {
		ttl = claims.ExpiresIn(now)
	}
	return r.client.Set(ctx, r.key, payload, ttl).Err()
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
