// Package flash はリダイレクト後に1回だけ表示するメッセージを保持する。
package flash

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Message struct {
	Kind Kind   `json:"type"`
	Text string `json:"message"`
}

func Success(text string) Message { return Message{Kind: KindSuccess, Text: text} }

func Error(text string) Message { return Message{Kind: KindError, Text: text} }

// セッションIDごとに1件。Popで取り出すと消える。
type Store interface {
	Put(ctx context.Context, sessionID string, msg Message) error
	Pop(ctx context.Context, sessionID string) (*Message, error)
}

// プロセス内のStore（REDIS_URL未設定時とテスト用）
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]memoryEntry
}

type memoryEntry struct {
	msg       Message
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[sessionID] = memoryEntry{msg: msg, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[sessionID]
	if !ok {
		return nil, nil
	}
	delete(s.data, sessionID)
	if s.ttl > 0 && s.now().After(e.expiresAt) {
		return nil, nil
	}
	msg := e.msg
	return &msg, nil
}
