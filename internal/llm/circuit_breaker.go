package llm

import (
	"errors"
	"sync"
	"time"

	"decision-coach/internal/logger"
)

var ErrTooManyRequests = errors.New("llm: too many requests in half-open state")

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"    // Normal operation
	StateOpen     CircuitState = "open"      // Failing, reject requests
	StateHalfOpen CircuitState = "half-open" // Testing if service recovered
)

// CircuitBreaker stops calling the remote model after repeated failures and
// probes it again once the open timeout has passed.
type CircuitBreaker struct {
	mu                   sync.Mutex
	state                CircuitState
	failureCount         int
	halfOpenInFlight     int
	consecutiveSuccesses int
	lastFailureTime      time.Time
	lastStateChange      time.Time

	failureThreshold int
	successThreshold int
	timeout          time.Duration
	halfOpenMax      int

	totalRequests   int64
	totalSuccesses  int64
	totalFailures   int64
	totalRejections int64

	clock Clock
	log   *logger.Logger
}

// BreakerStats is a point-in-time snapshot for the health endpoint.
type BreakerStats struct {
	State           CircuitState `json:"state"`
	TotalRequests   int64        `json:"totalRequests"`
	TotalSuccesses  int64        `json:"totalSuccesses"`
	TotalFailures   int64        `json:"totalFailures"`
	TotalRejections int64        `json:"totalRejections"`
	FailureCount    int          `json:"failureCount"`
	TimeInState     string       `json:"timeInState"`
}

func NewCircuitBreaker(failureThreshold int, timeout time.Duration, clock Clock, log *logger.Logger) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 3
	}
	if timeout < time.Second {
		timeout = 5 * time.Minute
	}
	if clock == nil {
		clock = SystemClock{}
	}
	cb := &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		successThreshold: 3,
		timeout:          timeout,
		halfOpenMax:      3,
		clock:            clock,
		log:              log,
		lastStateChange:  clock.Now(),
	}
	log.Debug("circuit breaker initialized", "threshold", failureThreshold, "timeout", timeout.String())
	return cb
}

// Call runs fn unless the breaker rejects it, and records the outcome.
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}
	err := fn()
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalRequests++
	switch cb.state {
	case StateOpen:
		if cb.clock.Now().Sub(cb.lastFailureTime) > cb.timeout {
			cb.setState(StateHalfOpen)
			cb.consecutiveSuccesses = 0
			cb.halfOpenInFlight = 1
			return nil
		}
		cb.totalRejections++
		return ErrCircuitOpen
	case StateHalfOpen:
		if cb.halfOpenInFlight >= cb.halfOpenMax {
			cb.totalRejections++
			return ErrTooManyRequests
		}
		cb.halfOpenInFlight++
		return nil
	default:
		return nil
	}
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.halfOpenInFlight > 0 {
		cb.halfOpenInFlight--
	}

	if err != nil {
		cb.totalFailures++
		cb.failureCount++
		cb.consecutiveSuccesses = 0
		cb.lastFailureTime = cb.clock.Now()

		switch cb.state {
		case StateClosed:
			if cb.failureCount >= cb.failureThreshold {
				cb.setState(StateOpen)
			}
		case StateHalfOpen:
			cb.setState(StateOpen)
		}
		return
	}

	cb.totalSuccesses++
	cb.consecutiveSuccesses++
	switch cb.state {
	case StateClosed:
		cb.failureCount = 0
	case StateHalfOpen:
		if cb.consecutiveSuccesses >= cb.successThreshold {
			cb.setState(StateClosed)
			cb.failureCount = 0
		}
	}
}

func (cb *CircuitBreaker) setState(newState CircuitState) {
	oldState := cb.state
	cb.state = newState
	cb.lastStateChange = cb.clock.Now()
	if oldState != newState {
		cb.log.Warn("circuit breaker state change", "from", string(oldState), "to", string(newState), "failures", cb.failureCount)
	}
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsOpen reports whether calls are currently being rejected. An open breaker
// whose timeout has elapsed reports false so the next call can probe.
func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state == StateOpen && cb.clock.Now().Sub(cb.lastFailureTime) <= cb.timeout
}

func (cb *CircuitBreaker) Stats() BreakerStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return BreakerStats{
		State:           cb.state,
		TotalRequests:   cb.totalRequests,
		TotalSuccesses:  cb.totalSuccesses,
		TotalFailures:   cb.totalFailures,
		TotalRejections: cb.totalRejections,
		FailureCount:    cb.failureCount,
		TimeInState:     cb.clock.Now().Sub(cb.lastStateChange).String(),
	}
}

// Reset manually resets the circuit breaker to closed state
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.setState(StateClosed)
	cb.failureCount = 0
	cb.halfOpenInFlight = 0
	cb.consecutiveSuccesses = 0
}
