package pulllist

// Phase is the gesture tracker's position in the pull cycle.
type Phase int

const (
	Idle Phase = iota
	Tracking
	Pulling
	Refreshing
)

func (p Phase) String() string {
	switch p {
	case Tracking:
		return "tracking"
	case Pulling:
		return "pulling"
	case Refreshing:
		return "refreshing"
	default:
		return "idle"
	}
}

// Action is what the tracker asks the list to do after a touch event.
type Action int

const (
	// NoAction leaves the view untouched.
	NoAction Action = iota
	// Preview sets the rubber-band offset to the current pull delta.
	Preview
	// Arm pins the armed offset and starts a refresh cycle.
	Arm
	// SpringBack resets the offset to zero.
	SpringBack
)

// Gesture turns touch deltas into pull actions. It lives on one list
// instance and is never shared.
type Gesture struct {
	touchStartY     int
	pullDelta       int
	canRefresh      bool
	isPulling       bool
	refreshInFlight bool
	touching        bool
	phase           Phase
}

// NewGesture returns a tracker in its neutral state.
func NewGesture() Gesture {
	return Gesture{canRefresh: true}
}

// Reset returns the tracker to its neutral state.
func (g *Gesture) Reset() {
	*g = NewGesture()
}

// Start records the touch origin.
func (g *Gesture) Start(y int) {
	g.touchStartY = y
	g.pullDelta = 0
	g.isPulling = false
	g.touching = true
	if !g.refreshInFlight {
		g.phase = Tracking
	}
}

// Move interprets a touch-move at y. Pull handling is suppressed while the
// list is not at its top or a refresh cycle is still running.
func (g *Gesture) Move(y int) Action {
	if !g.touching || !g.canRefresh || g.refreshInFlight {
		return NoAction
	}
	g.pullDelta = y - g.touchStartY
	switch {
	case g.pullDelta <= 0:
		return NoAction
	case g.pullDelta <= Threshold:
		g.phase = Tracking
		return Preview
	}
	g.phase = Pulling
	if g.isPulling {
		return NoAction
	}
	return g.arm()
}

// Trigger starts a refresh cycle without a drag, subject to the same guard.
func (g *Gesture) Trigger() Action {
	if g.refreshInFlight {
		return NoAction
	}
	return g.arm()
}

func (g *Gesture) arm() Action {
	g.isPulling = true
	g.refreshInFlight = true
	g.phase = Refreshing
	return Arm
}

// End finishes the touch. The offset springs back unless a refresh cycle
// owns it.
func (g *Gesture) End() Action {
	wasTouching := g.touching
	g.touching = false
	g.pullDelta = 0
	if g.refreshInFlight {
		return NoAction
	}
	g.phase = Idle
	if !wasTouching {
		return NoAction
	}
	return SpringBack
}

// Scroll updates whether the list is at its top.
func (g *Gesture) Scroll(offset int) {
	g.canRefresh = offset == 0
}

// Release clears the refresh guard once the confirmation hold has elapsed.
// A finger still down past the threshold does not re-arm until the next
// touch starts.
func (g *Gesture) Release() {
	g.refreshInFlight = false
	if g.touching {
		g.phase = Tracking
		return
	}
	g.phase = Idle
}

// PullDelta returns the distance pulled in the current gesture.
func (g Gesture) PullDelta() int { return g.pullDelta }

// CanRefresh reports whether the list is scrolled to its top.
func (g Gesture) CanRefresh() bool { return g.canRefresh }

// InFlight reports whether a refresh cycle is running.
func (g Gesture) InFlight() bool { return g.refreshInFlight }

// Phase returns the current phase.
func (g Gesture) Phase() Phase { return g.phase }
