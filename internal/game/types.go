package game

// Message represents an on-screen message shown for a limited time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
}

// Bumper is told when the camera walks into a wall.
type Bumper interface {
	Bump()
}

// Controls is the per-frame command read from the keyboard.
type Controls struct {
	Forward int // +1 forward, -1 backward, 0 idle
	Turn    int // +1 counter-clockwise, -1 clockwise, 0 idle
}
