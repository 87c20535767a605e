package remat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/remat/internal/logging"
	"github.com/aretw0/remat/pkg/adapters/gltfio"
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/events"
	"github.com/aretw0/remat/pkg/gamedir"
	"github.com/aretw0/remat/pkg/queue"
	"github.com/aretw0/remat/pkg/resolve"
	"github.com/aretw0/remat/pkg/transforms"
	"github.com/google/uuid"
	"github.com/qmuntal/gltf"
)

// Version is the current remat release.
var Version = "0.4.0"

// Session owns one mesh document for the duration of a transform/save
// workflow: the document, the catalog it resolves against, the pending
// command queue and the event channel. Sessions are single-owner and are
// discarded after the save completes.
type Session struct {
	id      string
	doc     *gltf.Document
	catalog *catalog.Catalog
	queue   *queue.Queue[*transforms.Context]
	events  *events.Channel
	logger  *slog.Logger
	gameDir string
}

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithCatalog injects the material catalog, bypassing the bundled defaults.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = cat
	}
}

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithEventChannel injects a pre-wired event channel, so observers (metrics,
// progress UIs) can subscribe before construction events fire.
func WithEventChannel(ch *events.Channel) Option {
	return func(s *Session) {
		s.events = ch
	}
}

// WithGameDir configures the game installation directory. The path is
// validated during construction; construction fails if the required data
// subpath is missing. Discovery from the environment is a separate, explicit
// step (gamedir.Discover); constructors never probe the environment.
func WithGameDir(dir string) Option {
	return func(s *Session) {
		s.gameDir = dir
	}
}

// New is the canonical constructor: it takes an in-memory mesh document and
// returns a session ready to queue transforms. The material normalization
// pass runs here, unconditionally, before the session is handed back.
func New(doc *gltf.Document, opts ...Option) (*Session, error) {
	if doc == nil {
		return nil, domain.ErrNoDocument
	}

	s := &Session{
		id:    uuid.NewString(),
		doc:   doc,
		queue: queue.New[*transforms.Context](),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.events == nil {
		s.events = events.NewChannel()
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.catalog == nil {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
		s.catalog = cat
	}
	if s.gameDir != "" {
		if err := gamedir.Validate(s.gameDir); err != nil {
			return nil, err
		}
	}

	changed := resolve.Normalize(doc, s.catalog)
	s.events.Publish(domain.Event{Type: domain.EventSessionOpen, SessionID: s.id})
	s.events.Publish(domain.Event{Type: domain.EventNormalized, SessionID: s.id, Count: changed})
	s.logger.Debug("session opened",
		"session_id", s.id,
		"materials", len(doc.Materials),
		"normalized", changed,
	)

	return s, nil
}

// Open constructs a session from a document on disk (.gltf or .glb).
func Open(path string, opts ...Option) (*Session, error) {
	doc, err := gltfio.Open(path)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// FromBytes constructs a session from an in-memory blob, binary or JSON text.
func FromBytes(data []byte, opts ...Option) (*Session, error) {
	doc, err := gltfio.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// FromJSON constructs a session from glTF JSON text.
func FromJSON(text []byte, opts ...Option) (*Session, error) {
	return FromBytes(text, opts...)
}

// Queue appends a transform to the pending command queue. Nothing executes
// until Save (or Drain) runs. Returns the session for chaining.
func (s *Session) Queue(cmd transforms.Command) *Session {
	s.queue.Enqueue(traced{cmd: cmd, events: s.events, sessionID: s.id})
	return s
}

// Pending reports how many transforms are waiting for the next drain.
func (s *Session) Pending() int {
	return s.queue.Len()
}

// Drain executes all queued transforms in order against the document. On
// failure the remaining snapshot is discarded; see queue.Queue.Drain.
func (s *Session) Drain(ctx context.Context) error {
	return s.queue.Drain(ctx, &transforms.Context{
		Doc:     s.doc,
		Catalog: s.catalog,
		Events:  s.events,
		GameDir: s.gameDir,
		Logger:  s.logger,
	})
}

// Save drains the queue and writes the document. In binary mode a single
// self-contained <path>.glb is produced; in text mode a directory <path>/
// with a <name>.gltf manifest plus auxiliary resources.
func (s *Session) Save(ctx context.Context, path string, asText bool) error {
	if err := s.Drain(ctx); err != nil {
		return err
	}

	var err error
	if asText {
		err = gltfio.SaveText(s.doc, path)
	} else {
		err = gltfio.SaveBinary(s.doc, path)
	}
	if err != nil {
		return err
	}

	s.events.Publish(domain.Event{Type: domain.EventDocumentSaved, SessionID: s.id, Path: path})
	s.logger.Info("document saved", "session_id", s.id, "path", path, "text", asText)
	return nil
}

// SetGameDir configures the installation directory after construction. On
// validation failure the previously configured directory is kept.
func (s *Session) SetGameDir(dir string) error {
	if err := gamedir.Validate(dir); err != nil {
		return err
	}
	s.gameDir = dir
	return nil
}

// ID returns the session identifier used in events and logs.
func (s *Session) ID() string { return s.id }

// GameDir returns the configured installation directory, or "".
func (s *Session) GameDir() string { return s.gameDir }

// Document exposes the owned mesh document. The session retains ownership;
// callers must not share it with another session.
func (s *Session) Document() *gltf.Document { return s.doc }

// Catalog returns the read-only material catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Events returns the session event channel for observers.
func (s *Session) Events() *events.Channel { return s.events }

// Pairs returns the current material pairings, in document order.
func (s *Session) Pairs() []resolve.Pair {
	return resolve.Pairs(s.doc, s.catalog)
}

// traced wraps a queued command to publish start/done events around it.
type traced struct {
	cmd       transforms.Command
	events    *events.Channel
	sessionID string
}

func (t traced) Name() string { return t.cmd.Name() }

func (t traced) Apply(ctx context.Context, tc *transforms.Context) error {
	t.events.Publish(domain.Event{Type: domain.EventCommandStart, SessionID: t.sessionID, Command: t.cmd.Name()})
	err := t.cmd.Apply(ctx, tc)
	evt := domain.Event{Type: domain.EventCommandDone, SessionID: t.sessionID, Command: t.cmd.Name()}
	if err != nil {
		evt.IsError = true
		evt.Detail = err.Error()
	}
	t.events.Publish(evt)
	return err
}
