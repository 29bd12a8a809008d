package engine

// Scheduler runs a callback on the next display refresh.
type Scheduler interface {
	RequestFrame(fn func())
}

// FrameQueue is a cooperative Scheduler. Hosts call RunFrame once per
// refresh; callbacks requested while a frame runs wait for the next one.
type FrameQueue struct {
	next []func()
}

func (q *FrameQueue) RequestFrame(fn func()) {
	q.next = append(q.next, fn)
}

// Pending reports how many callbacks wait for the next frame.
func (q *FrameQueue) Pending() int { return len(q.next) }

// RunFrame runs the callbacks queued so far and returns how many ran.
func (q *FrameQueue) RunFrame() int {
	cur := q.next
	q.next = nil
	for _, fn := range cur {
		fn()
	}
	return len(cur)
}
