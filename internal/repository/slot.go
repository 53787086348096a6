package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-redis/redis/v9"
)

// DefaultSlotName is the name of the slot holding customers collection
const DefaultSlotName = "customer-payment-dashboard"

// Slot is a single named cell holding encoded customers collection.
// Load returns nil bytes and no error when slot is absent.
type Slot interface {
	Name() string
	Load(context.Context) ([]byte, error)
	Store(context.Context, []byte) error
}

type memorySlot struct {
	mu   sync.RWMutex
	name string
	data []byte
}

// NewMemorySlot builds slot living in process memory
func NewMemorySlot(name string) Slot {
	return &memorySlot{name: name}
}

func (s *memorySlot) Name() string {
	return s.name
}

func (s *memorySlot) Load(context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, nil
	}

	data := make([]byte, len(s.data))
	copy(data, s.data)
	return data, nil
}

func (s *memorySlot) Store(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	return nil
}

type fileSlot struct {
	name string
	path string
}

// NewFileSlot builds slot stored as file <dir>/<name>.slot
func NewFileSlot(dir string, name string) Slot {
	return &fileSlot{name: name, path: filepath.Join(dir, name+".slot")}
}

func (s *fileSlot) Name() string {
	return s.name
}

func (s *fileSlot) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read slot file %s - %w", s.path, err)
	}
	return data, nil
}

func (s *fileSlot) Store(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create slot directory - %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), s.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary slot file - %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write slot file - %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close slot file - %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace slot file - %w", err)
	}
	return nil
}

type redisSlot struct {
	client *redis.Client
	name   string
}

// NewRedisSlot builds slot stored under redis key slot:<name>
func NewRedisSlot(client *redis.Client, name string) Slot {
	return &redisSlot{client: client, name: name}
}

func (s *redisSlot) Name() string {
	return s.name
}

func (s *redisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *redisSlot) Store(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key(), data, 0).Err()
}

func (s *redisSlot) key() string {
	return fmt.Sprintf("slot:%s", s.name)
}
