package session

import "sync"

// inFlight tracks actions currently being processed so a double submission is rejected
// instead of applied twice. It only covers this process.
type inFlight struct {
	mu      sync.Mutex
	actions map[string]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{
		actions: make(map[string]struct{}),
	}
}

// acquire marks the action as running and returns the function that releases it
func (f *inFlight) acquire(sessionID, actorID, action string) (func(), error) {
	key := sessionID + "|" + actorID + "|" + action

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.actions[key]; ok {
		return nil, ErrActionInProgress
	}
	f.actions[key] = struct{}{}

	return func() {
		f.mu.Lock()
		delete(f.actions, key)
		f.mu.Unlock()
	}, nil
}
