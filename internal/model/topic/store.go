package topic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Store exposes topic retrieval for HTTP handlers.
type Store interface {
	List() []Topic
	FindByName(name string) (Topic, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Topic
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied topics.
func NewMemoryStore(items []Topic) *MemoryStore {
	return &MemoryStore{items: append([]Topic(nil), items...)}
}

// List returns the configured topic list.
func (s *MemoryStore) List() []Topic {
	return append([]Topic(nil), s.items...)
}

// FindByName looks up a topic by its emotion name.
func (s *MemoryStore) FindByName(name string) (Topic, bool) {
	for _, item := range s.items {
		if item.Name == name {
			return item, true
		}
	}
	return Topic{}, false
}

// LoadFile reads a YAML topic catalogue used to override the built-in seed.
// The file holds a top-level "topics" list.
func LoadFile(path string) ([]Topic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topics file: %w", err)
	}

	var doc struct {
		Topics []Topic `yaml:"topics"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse topics file %s: %w", path, err)
	}
	if len(doc.Topics) == 0 {
		return nil, fmt.Errorf("topics file %s defines no topics", path)
	}

	for i, t := range doc.Topics {
		if t.Name == "" {
			return nil, fmt.Errorf("topics file %s: entry %d has no name", path, i)
		}
	}
	return doc.Topics, nil
}
