package taggable

import "context"

// Listener removes the taggings of resources that are about to be deleted. Register it with a
// store that dispatches pre-remove events so the removals are flushed together with the delete.
type Listener struct {
	manager *Manager
}

// NewListener returns a listener cascading deletes through m.
func NewListener(m *Manager) *Listener {
	return &Listener{manager: m}
}

// PreRemove stages the removal of every tagging of entity when it is a Resource. Other entities
// are ignored.
func (l *Listener) PreRemove(ctx context.Context, entity any) error {
	res, ok := entity.(Resource)
	if !ok {
		return nil
	}
	return l.manager.DeleteTagging(ctx, res)
}
