package orchestrator

import (
	"github.com/jurgelenas/xbps/pkg/model"
)

// Request is one package operation asked for by the caller before planning.
type Request struct {
	Name              string
	VersionConstraint string // empty means latest
	Action            model.Action
	Preserve          bool // keep installed configuration on update
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|planning|stats|done|error
	ID    string // pkgver identifier
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}
