package server

import (
	"sync"
	"time"

	"github.com/shouni/mestres-ai/pkg/session"
)

// ControllerFactory は新しいブラウザセッション用の Controller を作ります。
// credential はクッキーに保存されていたキーです（無ければ空）。
type ControllerFactory func(credential string) (*session.Controller, error)

type entry struct {
	ctrl     *session.Controller
	lastSeen time.Time
}

// Registry はクッキーのセッションIDごとに Controller を保持します。
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory ControllerFactory
	now     func() time.Time
}

func NewRegistry(factory ControllerFactory) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		factory: factory,
		now:     time.Now,
	}
}

// Get はIDに対応する Controller を返します。無ければ作成します。
func (r *Registry) Get(id, credential string) (*session.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		return e.ctrl, nil
	}
	ctrl, err := r.factory(credential)
	if err != nil {
		return nil, err
	}
	r.entries[id] = &entry{ctrl: ctrl, lastSeen: r.now()}
	return ctrl, nil
}

// Prune は maxIdle 以上使われていない Controller を破棄し、破棄した数を返します。
// 生成中のものは残します。
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.After(cutoff) || e.ctrl.Snapshot().InFlight {
			continue
		}
		delete(r.entries, id)
		removed++
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
