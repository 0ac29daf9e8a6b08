package network

// Tracked returns the number of runtime IDs with a motion recorded for the current tick.
func (n *MotionNotifier) Tracked() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
