package terminal

import (
	"sync"
	"time"

	"chosenoffset.com/gridcaster/internal/render"
)

// HoldWindow is how long a key counts as held after its last press event.
// Terminals report presses and auto-repeats but never releases.
const HoldWindow = 150 * time.Millisecond

// InputManager turns terminal key events into held and just-pressed state.
type InputManager struct {
	mu          sync.Mutex
	now         func() time.Time
	lastPress   map[render.Key]time.Time
	justPressed map[render.Key]bool
}

// NewInputManager uses now as its clock.
func NewInputManager(now func() time.Time) *InputManager {
	return &InputManager{
		now:         now,
		lastPress:   make(map[render.Key]time.Time),
		justPressed: make(map[render.Key]bool),
	}
}

// IsKeyPressed reports whether key was pressed within the hold window.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.held(key, m.now())
}

// IsKeyJustPressed reports whether key went down since the last tick.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.justPressed[key]
}

func (m *InputManager) press(key render.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()
	at := m.now()
	if !m.held(key, at) {
		m.justPressed[key] = true
	}
	m.lastPress[key] = at
}

func (m *InputManager) endTick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed)
}

func (m *InputManager) held(key render.Key, at time.Time) bool {
	last, ok := m.lastPress[key]
	return ok && at.Sub(last) <= HoldWindow
}
