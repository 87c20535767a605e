package transforms

import (
	"log/slog"

	"github.com/aretw0/remat/internal/logging"
	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
	"github.com/aretw0/remat/pkg/events"
	"github.com/aretw0/remat/pkg/queue"
	"github.com/qmuntal/gltf"
)

// Context is the shared mutable target handed to every drained command: the
// session's document plus the collaborators a transform may need. It is valid
// only for the duration of a drain.
type Context struct {
	Doc     *gltf.Document
	Catalog *catalog.Catalog
	Events  *events.Channel
	GameDir string
	Logger  *slog.Logger
}

// Command is the queue command type all transforms implement.
type Command = queue.Command[*Context]

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.NewNop()
	}
	return c.Logger
}

func (c *Context) publish(evt domain.Event) {
	if c.Events != nil {
		c.Events.Publish(evt)
	}
}
