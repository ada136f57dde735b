package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// Load reads and parses a todo file from path. The file must be valid
// JSON, pass schema validation, and be internally consistent.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("validate todo file: %w", err)
	}

	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	if l.Items == nil {
		l.Items = make(map[uint32]*Item)
	}
	if err := l.checkConsistent(); err != nil {
		return nil, fmt.Errorf("inconsistent todo file: %w", err)
	}

	return &l, nil
}

// LoadOrNew loads the todo file at path, substituting a fresh empty
// list when the file is missing, unreadable, or malformed. A corrupt
// file means "no data yet", not a fatal error; the reason is logged
// but never surfaced to the caller.
func LoadOrNew(path string, logger *log.Logger) *List {
	if logger == nil {
		logger = log.Default()
	}

	l, err := Load(path)
	if err == nil {
		return l
	}

	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no todo file yet", "path", path)
	} else {
		logger.Warn("ignoring unusable todo file", "path", path, "reason", err)
	}
	return NewList()
}

// Save writes the list to path as pretty-printed JSON, overwriting
// whatever is there. The whole collection is written on every save.
func (l *List) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todo file: %w", err)
	}

	// Add trailing newline
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}

	return nil
}

// checkConsistent verifies the structural invariants that the schema
// cannot express: map keys match item ids, parent links resolve, and
// the id counter is past every assigned id.
func (l *List) checkConsistent() error {
	if l.NextID < 1 {
		return fmt.Errorf("next_id %d is below 1", l.NextID)
	}
	for key, it := range l.Items {
		if it == nil {
			return fmt.Errorf("item %d is null", key)
		}
		if key != it.ID {
			return fmt.Errorf("item keyed %d has id %d", key, it.ID)
		}
		if it.ID >= l.NextID {
			return fmt.Errorf("item %d is not below next_id %d", it.ID, l.NextID)
		}
		if it.ParentID != nil {
			if _, ok := l.Items[*it.ParentID]; !ok {
				return fmt.Errorf("item %d references missing parent %d", it.ID, *it.ParentID)
			}
		}
	}
	return nil
}
