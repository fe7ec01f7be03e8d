package cli

import "sync"

// Router records the current view and its history. It implements
// guard.Navigator and is safe for concurrent use: the session watcher
// navigates from its own goroutine.
type Router struct {
	mu      sync.Mutex
	history []string
}

// NewRouter starts at path.
func NewRouter(path string) *Router {
	return &Router{history: []string{path}}
}

// Navigate moves to path. With replace the current history entry is
// overwritten, so Back cannot return to it; when the entry before it is
// already path the two collapse. Navigating to the current path is a no-op.
func (r *Router) Navigate(path string, replace bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := len(r.history) - 1
	if r.history[last] == path {
		return
	}
	if replace {
		if last > 0 && r.history[last-1] == path {
			r.history = r.history[:last]
			return
		}
		r.history[last] = path
		return
	}
	r.history = append(r.history, path)
}

// Current returns the path of the current view.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[len(r.history)-1]
}

// Back returns to the previous view. It reports false when there is none.
func (r *Router) Back() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) < 2 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	return true
}
