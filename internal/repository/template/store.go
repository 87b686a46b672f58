// Package template persists named watermark configurations as a JSON
// key-value file, loaded at startup and rewritten atomically on mutation.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"photo-watermark/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type Store struct {
	mu        sync.RWMutex
	path      string
	templates map[string]domain.Template
	validate  *validator.Validate
	retries   retry.Strategy
	logger    *zlog.Zerolog
}

// NewStore loads the template file at path, or starts empty if it does not
// exist. Individual entries that fail validation are dropped with a warning
// so one corrupt template does not take down the rest.
func NewStore(path string, retries retry.Strategy, logger *zlog.Zerolog) (*Store, error) {
	s := &Store{
		path:      path,
		templates: make(map[string]domain.Template),
		validate:  validator.New(),
		retries:   retries,
		logger:    logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read templates: %w", err)
	}

	var stored map[string]domain.Template
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Template file unreadable, starting empty")
		return s, nil
	}

	for name, t := range stored {
		t.Name = name
		if err := s.check(t); err != nil {
			logger.Warn().Str("template", name).Msg("Dropping corrupt template")
			continue
		}
		s.templates[name] = t
	}
	return s, nil
}

func (s *Store) check(t domain.Template) error {
	if err := s.validate.Struct(&t); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}
	if err := t.Watermark.CheckVariant(); err != nil {
		return err
	}
	return nil
}

// Save stores the template under its name. An existing name returns
// domain.ErrConflict unless overwrite is confirmed.
func (s *Store) Save(t domain.Template, overwrite bool) error {
	if err := s.check(t); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[t.Name]; exists && !overwrite {
		return fmt.Errorf("%w: template %q exists", domain.ErrConflict, t.Name)
	}

	s.templates[t.Name] = t
	if err := s.flushLocked(); err != nil {
		return err
	}

	s.logger.Info().Str("template", t.Name).Msg("Template saved")
	return nil
}

func (s *Store) Load(name string) (domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[name]
	if !ok {
		return domain.Template{}, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	if err := s.check(t); err != nil {
		return domain.Template{}, err
	}
	return t, nil
}

// Delete removes the template by name. Deleting an absent name is a no-op.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[name]; !ok {
		return nil
	}
	delete(s.templates, name)
	if err := s.flushLocked(); err != nil {
		return err
	}

	s.logger.Info().Str("template", name).Msg("Template deleted")
	return nil
}

func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// flushLocked rewrites the store file via temp file and rename, retrying
// transient failures. Caller holds s.mu.
func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.templates, "", "  ")
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}

	err = retry.Do(func() error {
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return err
		}
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		return os.Rename(tmp, s.path)
	}, s.retries)
	if err != nil {
		return fmt.Errorf("write templates: %w", err)
	}
	return nil
}
