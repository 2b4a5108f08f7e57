package notify

import "sync"

// Recorded is one captured notification.
type Recorded struct {
	Level   Level
	Message string
	Sticky  bool
}

// Recorder collects notifications for inspection in tests.
type Recorder struct {
	mu       sync.Mutex
	messages []Recorded
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(level Level, message string) {
	r.append(Recorded{Level: level, Message: message})
}

func (r *Recorder) NotifySticky(level Level, message string) {
	r.append(Recorded{Level: level, Message: message, Sticky: true})
}

func (r *Recorder) append(n Recorded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, n)
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.messages))
	copy(out, r.messages)
	return out
}
