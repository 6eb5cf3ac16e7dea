package csvsync

import (
	"sync"

	"github.com/agentstation/csvsync/pkg/tabular"
)

// Hook function types for record events
type (
	// RecordAddedHook is called for each record a workflow adds
	RecordAddedHook func(rec tabular.Record)

	// RecordUpdatedHook is called for each record a workflow changes
	RecordUpdatedHook func(old, new tabular.Record)

	// RecordRemovedHook is called for each record a workflow removes
	RecordRemovedHook func(rec tabular.Record)
)

// hooks manages event callbacks for record changes
type hooks struct {
	mu              sync.RWMutex
	onRecordAdded   []RecordAddedHook
	onRecordUpdated []RecordUpdatedHook
	onRecordRemoved []RecordRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnRecordAdded registers a callback for when records are added
func (h *hooks) OnRecordAdded(fn RecordAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordAdded = append(h.onRecordAdded, fn)
}

// OnRecordUpdated registers a callback for when records are updated
func (h *hooks) OnRecordUpdated(fn RecordUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordUpdated = append(h.onRecordUpdated, fn)
}

// OnRecordRemoved registers a callback for when records are removed
func (h *hooks) OnRecordRemoved(fn RecordRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRecordRemoved = append(h.onRecordRemoved, fn)
}

func (h *hooks) added(records []tabular.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, rec := range records {
		for _, hook := range h.onRecordAdded {
			hook(rec.Clone())
		}
	}
}

func (h *hooks) updated(old, new tabular.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRecordUpdated {
		hook(old.Clone(), new.Clone())
	}
}

func (h *hooks) removed(records []tabular.Record) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, rec := range records {
		for _, hook := range h.onRecordRemoved {
			hook(rec.Clone())
		}
	}
}
