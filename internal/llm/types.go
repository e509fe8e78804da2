package llm

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDisabled     = errors.New("llm: enhancement disabled")
	ErrRateLimited  = errors.New("llm: daily limit reached")
	ErrCircuitOpen  = errors.New("llm: circuit breaker open")
	ErrQueueFull    = errors.New("llm: queue full")
	ErrEmptyContent = errors.New("llm: empty completion")
)

// Priority levels (just 2)
type Priority int

const (
	PriorityCritical   Priority = 0 // Interactive analysis requests
	PriorityBackground Priority = 1 // Everything else
)

func (p Priority) String() string {
	if p == PriorityCritical {
		return "critical"
	}
	return "background"
}

// Request encapsulates an LLM call
type Request struct {
	ID       string
	Priority Priority
	Context  context.Context

	URL     string
	APIKey  string
	Payload interface{}

	// Response handling
	ResponseCh chan<- *Response
	ErrorCh    chan<- error

	SubmitTime time.Time
	Timeout    time.Duration
}

// Response encapsulates LLM output
type Response struct {
	StatusCode int
	Body       []byte
}

// QueueStats tracks queue performance
type QueueStats struct {
	CriticalEnqueued    int64            `json:"criticalEnqueued"`
	CriticalProcessed   int64            `json:"criticalProcessed"`
	CriticalDropped     int64            `json:"criticalDropped"`
	BackgroundEnqueued  int64            `json:"backgroundEnqueued"`
	BackgroundProcessed int64            `json:"backgroundProcessed"`
	BackgroundDropped   int64            `json:"backgroundDropped"`
	CurrentQueueDepth   map[Priority]int `json:"currentQueueDepth"`
}

// Clock abstracts time for quota and breaker tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Recorder receives one outcome per enhancement attempt.
type Recorder interface {
	LLMCall(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) LLMCall(string, string) {}
