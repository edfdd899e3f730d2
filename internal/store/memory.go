/**
 * @description
 * In-memory implementation of the Records contract, used by the test suites
 * and when the service runs without a DATABASE_URL. Documents round-trip
 * through encoding/json so filter matching and patching see exactly the
 * same value shapes the Postgres store does.
 *
 * The mutex serializes individual store calls but there is deliberately no
 * transaction spanning calls: the multi-step write sequences in the app
 * layer stay as racy here as they are against a real database.
 */
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

type memoryDoc = map[string]any

// MemoryRecords is a mutex-guarded map of collections to document lists.
type MemoryRecords struct {
	mu          sync.Mutex
	collections map[string][]memoryDoc
}

// NewMemoryRecords creates an empty in-memory store.
func NewMemoryRecords() *MemoryRecords {
	return &MemoryRecords{collections: map[string][]memoryDoc{}}
}

// normalize round-trips a value through JSON so stored documents and filter
// values compare with the same types (float64 numbers, map[string]any, ...).
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func matches(doc memoryDoc, filter Filter) (bool, error) {
	for field, want := range filter {
		normalized, err := normalize(want)
		if err != nil {
			return false, fmt.Errorf("normalizing filter value for %q: %w", field, err)
		}
		got, ok := doc[field]
		if !ok || !reflect.DeepEqual(got, normalized) {
			return false, nil
		}
	}
	return true, nil
}

// FindOne returns the first matching record decoded into dest.
func (s *MemoryRecords) FindOne(ctx context.Context, collection string, filter Filter, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if ok {
			data, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("encoding %s record: %w", collection, err)
			}
			return json.Unmarshal(data, dest)
		}
	}
	return ErrNotFound
}

// FindMany returns up to limit matching records decoded into dest.
func (s *MemoryRecords) FindMany(ctx context.Context, collection string, filter Filter, limit int, dest any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := []memoryDoc{}
	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if ok {
			found = append(found, doc)
			if limit > 0 && len(found) == limit {
				break
			}
		}
	}

	data, err := json.Marshal(found)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", collection, err)
	}
	return json.Unmarshal(data, dest)
}

// InsertOne stores a new record.
func (s *MemoryRecords) InsertOne(ctx context.Context, collection string, doc any) error {
	normalized, err := normalize(doc)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", collection, err)
	}
	asMap, ok := normalized.(map[string]any)
	if !ok {
		return fmt.Errorf("record for %s is not an object", collection)
	}
	if id, _ := asMap["id"].(string); id == "" {
		return fmt.Errorf("record for %s is missing an id", collection)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], asMap)
	return nil
}

func (s *MemoryRecords) update(collection string, filter Filter, patch Patch, limit int) (matched int64, modified int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return matched, modified, err
		}
		if !ok {
			continue
		}
		matched++

		changed := false
		for field, value := range patch {
			normalized, err := normalize(value)
			if err != nil {
				return matched, modified, fmt.Errorf("normalizing patch value for %q: %w", field, err)
			}
			if !reflect.DeepEqual(doc[field], normalized) {
				doc[field] = normalized
				changed = true
			}
		}
		if changed {
			modified++
		}
		if limit > 0 && matched == int64(limit) {
			break
		}
	}
	return matched, modified, nil
}

// UpdateOne patches at most one matching record and returns the matched
// count.
func (s *MemoryRecords) UpdateOne(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	matched, _, err := s.update(collection, filter, patch, 1)
	return matched, err
}

// UpdateMany patches every matching record and returns the modified count.
func (s *MemoryRecords) UpdateMany(ctx context.Context, collection string, filter Filter, patch Patch) (int64, error) {
	_, modified, err := s.update(collection, filter, patch, 0)
	return modified, err
}

func (s *MemoryRecords) delete(collection string, filter Filter, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.collections[collection][:0]
	var deleted int64
	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return deleted, err
		}
		if ok && (limit <= 0 || deleted < int64(limit)) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return deleted, nil
}

// DeleteOne removes at most one matching record.
func (s *MemoryRecords) DeleteOne(ctx context.Context, collection string, filter Filter) (int64, error) {
	return s.delete(collection, filter, 1)
}

// DeleteMany removes every matching record.
func (s *MemoryRecords) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	return s.delete(collection, filter, 0)
}

// Count returns the number of matching records.
func (s *MemoryRecords) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return count, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}
