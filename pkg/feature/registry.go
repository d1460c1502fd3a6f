package feature

import "sync"

// AddonHook lets external collaborators register additional features into
// the registry before the enabled-feature init pass runs.
type AddonHook func(r *Registry)

// Registry collects the feature instances for one process. It holds
// non-owning references: the container owns feature lifetimes.
type Registry struct {
	mu        sync.Mutex
	order     []Feature
	index     map[string]Feature
	hooks     []AddonHook
	hookFired bool
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]Feature)}
}

// Register adds a feature. Registering an id twice replaces the earlier
// instance in place, keeping its position in iteration order.
func (r *Registry) Register(f Feature) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[f.Id()]; exists {
		for i, existing := range r.order {
			if existing.Id() == f.Id() {
				r.order[i] = f
				break
			}
		}
	} else {
		r.order = append(r.order, f)
	}
	r.index[f.Id()] = f
}

func (r *Registry) Get(id string) (Feature, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.index[id]
	return f, ok
}

// All returns the features in insertion order.
func (r *Registry) All() []Feature {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Feature, len(r.order))
	copy(out, r.order)
	return out
}

// OnAddonHook queues fn to run when FireAddonHook is called. If the hook
// already fired this boot, fn runs immediately.
func (r *Registry) OnAddonHook(fn AddonHook) {
	r.mu.Lock()
	fired := r.hookFired
	if !fired {
		r.hooks = append(r.hooks, fn)
	}
	r.mu.Unlock()
	if fired {
		fn(r)
	}
}

// FireAddonHook runs the queued extension hooks exactly once per boot,
// before the enabled-feature init pass.
func (r *Registry) FireAddonHook() {
	r.mu.Lock()
	if r.hookFired {
		r.mu.Unlock()
		return
	}
	r.hookFired = true
	hooks := r.hooks
	r.hooks = nil
	r.mu.Unlock()

	for _, fn := range hooks {
		fn(r)
	}
}
