// Package editor implements the guided style profile editor: a session that
// holds a document tree and its metadata, applies schema-checked edits, and
// saves the result through a persistence gateway.
package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/JaimeStill/promptiverse/internal/styles"
	"github.com/JaimeStill/promptiverse/pkg/document"
	"github.com/JaimeStill/promptiverse/pkg/formatting"
)

// Status is the position of a session in its save lifecycle.
type Status int

const (
	StatusEmpty Status = iota
	StatusEditing
	StatusSaving
	StatusSaved
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusEditing:
		return "editing"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	default:
		return "unknown"
	}
}

// Mode selects whether a save creates a new record or updates the seed.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Gateway persists style profiles.
type Gateway interface {
	Create(ctx context.Context, cmd styles.CreateCommand) (*styles.StyleProfile, error)
	Update(ctx context.Context, id string, cmd styles.UpdateCommand) (*styles.StyleProfile, error)
}

// Metadata holds the record fields edited alongside the document.
type Metadata struct {
	Name        string
	Description string
	Tags        []string
}

// Observer receives the canonical preview after each accepted change.
type Observer func(preview []byte)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger.With("component", "editor")
	}
}

// WithObserver registers fn to receive preview updates.
func WithObserver(fn Observer) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// Session is a single guided editing session. It is safe for concurrent use,
// but a session edits exactly one record and is finished once saved.
type Session struct {
	mu       sync.Mutex
	gateway  Gateway
	logger   *slog.Logger
	observer Observer

	tree       document.Mapping
	meta       Metadata
	section    string
	mode       Mode
	id         string
	status     Status
	err        error
	version    string
	isTemplate bool
	saved      *styles.StyleProfile
}

// New creates an empty session that saves through gateway.
func New(gateway Gateway, opts ...Option) *Session {
	s := &Session{
		gateway: gateway,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset(nil)
	return s
}

// Initialize starts the session over. A nil seed begins a new style profile
// with every section empty; otherwise the seed's sections and metadata are
// adopted and a save updates the seed's record.
func (s *Session) Initialize(seed *styles.StyleProfile) error {
	s.mu.Lock()
	if s.status == StatusSaving {
		s.mu.Unlock()
		return ErrSaving
	}
	s.reset(seed)
	s.status = StatusEditing
	s.logger.Debug("session initialized", "mode", s.mode, "id", s.id)
	preview := s.previewLocked()
	s.mu.Unlock()

	s.notify(preview)
	return nil
}

func (s *Session) reset(seed *styles.StyleProfile) {
	s.tree = make(document.Mapping, len(styles.Sections))
	for _, name := range styles.Sections {
		s.tree[name] = document.Mapping{}
	}
	s.meta = Metadata{Tags: []string{}}
	s.section = styles.Sections[0]
	s.mode = ModeCreate
	s.id = ""
	s.status = StatusEmpty
	s.err = nil
	s.version = styles.SchemaVersion
	s.isTemplate = false
	s.saved = nil

	if seed == nil {
		return
	}

	for _, name := range styles.Sections {
		if sec := seed.Section(name); sec != nil {
			s.tree[name] = sec
		}
	}
	s.meta.Name = seed.Name
	if seed.Description != nil {
		s.meta.Description = *seed.Description
	}
	s.meta.Tags = append(s.meta.Tags, seed.Tags...)
	s.mode = ModeEdit
	s.id = seed.ID
	s.isTemplate = seed.IsTemplate
	if seed.SchemaVersion != "" {
		s.version = seed.SchemaVersion
	}
}

// Dispatch validates edit against the schema and applies it to the tree.
// A rejected edit leaves the session unchanged.
func (s *Session) Dispatch(edit Edit) error {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}

	path := edit.Target()
	f, ok := Lookup(path)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}

	tree, err := edit.apply(s.tree, f)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.tree = tree
	s.status = StatusEditing
	s.logger.Debug("edit applied", "path", path.String(), "edit", fmt.Sprintf("%T", edit))
	preview := s.previewLocked()
	s.mu.Unlock()

	s.notify(preview)
	return nil
}

// SetName sets the record name.
func (s *Session) SetName(name string) error {
	return s.updateMeta(func(m *Metadata) {
		m.Name = strings.TrimSpace(name)
	})
}

// SetDescription sets the record description.
func (s *Session) SetDescription(description string) error {
	return s.updateMeta(func(m *Metadata) {
		m.Description = strings.TrimSpace(description)
	})
}

// SetTags replaces the record tags from comma-separated input.
func (s *Session) SetTags(input string) error {
	return s.updateMeta(func(m *Metadata) {
		m.Tags = formatting.ParseTags(input)
	})
}

// SetID requests a specific id for a new style profile.
func (s *Session) SetID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writableLocked(); err != nil {
		return err
	}
	if s.mode != ModeCreate {
		return ErrNotEditing
	}
	s.id = strings.TrimSpace(id)
	return nil
}

func (s *Session) updateMeta(fn func(*Metadata)) error {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	fn(&s.meta)
	s.status = StatusEditing
	preview := s.previewLocked()
	s.mu.Unlock()

	s.notify(preview)
	return nil
}

// SetSection changes the section in view.
func (s *Session) SetSection(name string) error {
	if !IsSection(name) {
		return fmt.Errorf("%w: %s", ErrUnknownSection, name)
	}
	s.mu.Lock()
	s.section = name
	s.mu.Unlock()
	return nil
}

// Section returns the section in view.
func (s *Session) Section() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// Tree returns the current document tree. The tree must not be modified.
func (s *Session) Tree() document.Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// Get returns the value at path in the current tree.
func (s *Session) Get(path document.Path) (document.Value, bool) {
	return document.Get(s.Tree(), path)
}

// Metadata returns a copy of the record metadata.
func (s *Session) Metadata() Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.meta
	m.Tags = append([]string(nil), s.meta.Tags...)
	return m
}

// Status returns the lifecycle status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Mode returns whether a save creates or updates.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// ID returns the record id, empty for a new record without a requested id.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Err returns the error from the most recent failed save.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Saved returns the record returned by a successful save.
func (s *Session) Saved() *styles.StyleProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// Serialize merges the metadata with every document section.
func (s *Session) Serialize() (styles.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serializeLocked()
}

// Preview returns the canonical JSON of the payload a save would send.
func (s *Session) Preview() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewLocked()
}

// Save sends the serialized document to the gateway. On failure the session
// returns to editing with the tree intact and the error recorded.
func (s *Session) Save(ctx context.Context) (*styles.StyleProfile, error) {
	s.mu.Lock()
	if err := s.writableLocked(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	payload, err := s.serializeLocked()
	if err != nil {
		s.err = err
		s.mu.Unlock()
		return nil, err
	}

	mode, id := s.mode, s.id
	s.status = StatusSaving
	s.mu.Unlock()

	var record *styles.StyleProfile
	if mode == ModeEdit {
		record, err = s.gateway.Update(ctx, id, styles.UpdateCommand{Payload: payload})
	} else {
		record, err = s.gateway.Create(ctx, styles.CreateCommand{ID: id, Payload: payload})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil && record == nil {
		err = ErrNoRecord
	}
	if err != nil {
		s.status = StatusEditing
		s.err = err
		s.logger.Warn("style save failed", "mode", mode, "id", id, "error", err)
		return nil, err
	}

	s.status = StatusSaved
	s.err = nil
	s.saved = record
	s.id = record.ID
	s.logger.Info("style saved", "mode", mode, "id", record.ID, "name", record.Name)
	return record, nil
}

func (s *Session) writableLocked() error {
	switch s.status {
	case StatusSaving:
		return ErrSaving
	case StatusSaved:
		return ErrClosed
	}
	return nil
}

func (s *Session) serializeLocked() (styles.Payload, error) {
	p := s.payloadLocked()
	if p.Name == "" {
		return p, fmt.Errorf("%w: name", document.ErrEmptyValue)
	}
	return p, nil
}

func (s *Session) payloadLocked() styles.Payload {
	p := styles.Payload{
		SchemaVersion: s.version,
		Name:          s.meta.Name,
		Tags:          append([]string{}, s.meta.Tags...),
		Intent:        section(s.tree, "intent"),
		Style:         section(s.tree, "style"),
		Negative:      section(s.tree, "negative"),
		IsTemplate:    s.isTemplate,
	}
	if s.meta.Description != "" {
		desc := s.meta.Description
		p.Description = &desc
	}
	return p
}

func (s *Session) previewLocked() []byte {
	b, err := document.Canonical(s.payloadLocked().Document())
	if err != nil {
		s.logger.Error("render preview failed", "error", err)
		return nil
	}
	return b
}

func (s *Session) notify(preview []byte) {
	if s.observer != nil && preview != nil {
		s.observer(preview)
	}
}

func section(tree document.Mapping, name string) document.Mapping {
	if m, ok := tree[name].(document.Mapping); ok {
		return m
	}
	return document.Mapping{}
}
