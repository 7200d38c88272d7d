package merge

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/rs/zerolog"

	"github.com/extconf/extconf/packages/core/document"
)

// Store is the side-effecting boundary the merger writes through. All
// computation up to the final write set is pure; Reset and SetMany are only
// issued after the whole merge has validated.
type Store interface {
	Reset() error
	Get(key string) (any, bool, error)
	SetMany(values map[string]any) error
}

// Defaults supplies fallback values for append targets that have no stored
// value, mirroring framework-provided defaults. Optional.
type Defaults interface {
	Default(key string) (any, bool)
}

// Result holds the outcome of a merge: the full effective configuration and
// the subset of keys actually written (those whose final value differed
// from the store's prior state).
type Result struct {
	Effective map[string]any
	Writes    map[string]any
	Reset     bool
}

// Merger applies ordered config documents to a store.
type Merger struct {
	store    Store
	defaults Defaults
	dryRun   bool
	log      zerolog.Logger
}

type Option func(*Merger)

// WithDefaults attaches a fallback provider consulted when an append target
// is absent from both the current merge and the store.
func WithDefaults(d Defaults) Option {
	return func(m *Merger) { m.defaults = d }
}

// WithDryRun computes the full merge and write set but issues no store
// writes and no reset.
func WithDryRun(dry bool) Option {
	return func(m *Merger) { m.dryRun = dry }
}

// WithLogger sets the logger used for per-key set/append lines.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Merger) { m.log = log }
}

func New(store Store, opts ...Option) *Merger {
	m := &Merger{
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge applies documents in the given order and commits the resulting
// write set. Sections within each document are expected in lexicographic
// order (document.Parse guarantees this); the environment document, if any,
// must be passed last by the caller.
//
// If reset is true the store's prior state is ignored during the merge and
// Reset is issued before the writes. Any error aborts before the first
// write: the store is never partially updated.
func (m *Merger) Merge(docs []*document.Document, reset bool) (*Result, error) {
	effective := make(map[string]any)
	prior := newPriorCache(m.store, reset)

	for _, doc := range docs {
		for _, sec := range doc.Sections {
			if err := m.applySection(doc, sec, effective, prior); err != nil {
				return nil, err
			}
		}
	}

	writes, err := m.diff(effective, prior, reset)
	if err != nil {
		return nil, err
	}

	result := &Result{Effective: effective, Writes: writes, Reset: reset}
	if m.dryRun {
		return result, nil
	}

	if reset {
		if err := m.store.Reset(); err != nil {
			return nil, fmt.Errorf("resetting store: %w", err)
		}
	}
	if len(writes) > 0 {
		if err := m.store.SetMany(writes); err != nil {
			return nil, fmt.Errorf("writing %d keys to store: %w", len(writes), err)
		}
	}
	return result, nil
}

func (m *Merger) applySection(doc *document.Document, sec *document.Section, effective map[string]any, prior *priorCache) error {
	keys := make([]string, 0, len(sec.Body))
	for k := range sec.Body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := sec.Body[key]
		switch sec.Op {
		case document.OpSet:
			m.log.Info().Str("source", doc.Source).Str("key", key).Msg("setting")
			effective[key] = value
		case document.OpAppend:
			merged, err := m.appendValue(doc, key, value, effective, prior)
			if err != nil {
				return err
			}
			m.log.Info().Str("source", doc.Source).Str("key", key).Msg("appending")
			effective[key] = merged
		}
	}
	return nil
}

// appendValue combines the current value for key with the section's value.
// The current value is looked up in the accumulating effective config
// first, then the store, then the defaults provider.
func (m *Merger) appendValue(doc *document.Document, key string, value any, effective map[string]any, prior *priorCache) (any, error) {
	current, ok := effective[key]
	if !ok {
		var err error
		current, ok, err = prior.get(key)
		if err != nil {
			return nil, err
		}
	}
	if !ok && m.defaults != nil {
		current, ok = m.defaults.Default(key)
	}
	if !ok {
		return nil, &AppendError{
			Source: doc.Source,
			Key:    key,
			Reason: "append target does not exist and has no default",
		}
	}

	switch values := value.(type) {
	case []any:
		seq, ok := current.([]any)
		if !ok {
			return nil, &AppendError{
				Source: doc.Source,
				Key:    key,
				Reason: fmt.Sprintf("expected sequence, current value is %T", current),
			}
		}
		out := make([]any, 0, len(seq)+len(values))
		out = append(out, seq...)
		out = append(out, values...)
		return out, nil
	case map[string]any:
		mapping, ok := current.(map[string]any)
		if !ok {
			return nil, &AppendError{
				Source: doc.Source,
				Key:    key,
				Reason: fmt.Sprintf("expected mapping, current value is %T", current),
			}
		}
		out := make(map[string]any, len(mapping)+len(values))
		for k, v := range mapping {
			out[k] = v
		}
		for k, v := range values {
			out[k] = v
		}
		return out, nil
	default:
		return nil, &AppendError{
			Source: doc.Source,
			Key:    key,
			Reason: fmt.Sprintf("appended value must be a sequence or mapping, got %T", value),
		}
	}
}

// diff reduces the effective config to the keys whose final value differs
// from (or is absent in) the store's prior state. With reset every key is
// written.
func (m *Merger) diff(effective map[string]any, prior *priorCache, reset bool) (map[string]any, error) {
	writes := make(map[string]any, len(effective))
	for key, value := range effective {
		if reset {
			writes[key] = value
			continue
		}
		old, ok, err := prior.get(key)
		if err != nil {
			return nil, err
		}
		if !ok || !reflect.DeepEqual(old, value) {
			writes[key] = value
		}
	}
	return writes, nil
}

// priorCache memoizes store reads so the merge sees one consistent snapshot
// of the pre-merge state. With reset the store is treated as already empty.
type priorCache struct {
	store  Store
	reset  bool
	values map[string]any
	seen   map[string]bool
}

func newPriorCache(store Store, reset bool) *priorCache {
	return &priorCache{
		store:  store,
		reset:  reset,
		values: make(map[string]any),
		seen:   make(map[string]bool),
	}
}

func (c *priorCache) get(key string) (any, bool, error) {
	if c.reset {
		return nil, false, nil
	}
	if c.seen[key] {
		v, ok := c.values[key]
		return v, ok, nil
	}
	v, ok, err := c.store.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("reading key %q from store: %w", key, err)
	}
	c.seen[key] = true
	if ok {
		c.values[key] = v
	}
	return v, ok, nil
}
