// Package storage persists conversations as JSON documents, one file per
// conversation, matching the payloads the front-end consumes.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jbrusey/llm-council/internal/council"
)

// ErrNotFound is returned when a conversation id has no document.
var ErrNotFound = errors.New("conversation not found")

// Message is one entry in a conversation: a user question, or an assistant
// entry carrying the full council result.
type Message struct {
	Role      string          `json:"role"`
	Content   string          `json:"content,omitempty"`
	Council   *council.Result `json:"council,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Conversation is the persisted document.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// Summary is the listing form of a conversation.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Store reads and writes conversation documents under a data directory. A
// mutex serializes the read-modify-write updates; concurrent appends to the
// same conversation must not lose messages.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore creates the data directory if needed and returns a store.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dataDir}, nil
}

// Create starts a new, empty conversation.
func (s *Store) Create() (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	conv := &Conversation{
		ID:        uuid.NewString(),
		Title:     "New Conversation",
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}
	if err := s.write(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// List returns summaries of all conversations, newest first.
func (s *Store) List() ([]Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		conv, err := s.read(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			// A single unreadable document should not break the listing.
			continue
		}
		summaries = append(summaries, Summary{
			ID:           conv.ID,
			Title:        conv.Title,
			CreatedAt:    conv.CreatedAt,
			UpdatedAt:    conv.UpdatedAt,
			MessageCount: len(conv.Messages),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// Get returns a conversation by id.
func (s *Store) Get(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(id)
}

// AppendMessage appends a message and returns the updated conversation.
func (s *Store) AppendMessage(id string, msg Message) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.read(id)
	if err != nil {
		return nil, err
	}

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = time.Now().UTC()

	if err := s.write(conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// SetTitle updates a conversation's title.
func (s *Store) SetTitle(id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.read(id)
	if err != nil {
		return err
	}
	conv.Title = title
	conv.UpdatedAt = time.Now().UTC()
	return s.write(conv)
}

// Delete removes a conversation document.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (s *Store) read(id string) (*Conversation, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read conversation: %w", err)
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to parse conversation %s: %w", id, err)
	}
	return &conv, nil
}

func (s *Store) write(conv *Conversation) error {
	path, err := s.path(conv.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write conversation: %w", err)
	}
	return nil
}

// path maps an id to its document path. Ids are uuids; anything that could
// escape the data directory is rejected.
func (s *Store) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\.`) {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, id+".json"), nil
}
