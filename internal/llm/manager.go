package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"decision-coach/internal/logger"
)

// Manager coordinates all LLM requests: two priority queues feeding a fixed
// number of concurrent slots, guarded by a circuit breaker.
type Manager struct {
	criticalQueue   chan *Request
	backgroundQueue chan *Request

	semaphore chan struct{}

	breaker    *CircuitBreaker
	httpClient *http.Client
	log        *logger.Logger

	mu    sync.Mutex
	stats QueueStats

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewManager(cfg *Config, breaker *CircuitBreaker, log *logger.Logger) *Manager {
	m := &Manager{
		criticalQueue:   make(chan *Request, cfg.CriticalQueueSize),
		backgroundQueue: make(chan *Request, cfg.BackgroundQueueSize),
		semaphore:       make(chan struct{}, cfg.MaxConcurrent),
		breaker:         breaker,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		log: log.With("component", "llm_queue"),
		stats: QueueStats{
			CurrentQueueDepth: map[Priority]int{
				PriorityCritical:   0,
				PriorityBackground: 0,
			},
		},
		stopCh: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.dispatcher()

	m.log.Info("llm queue started", "slots", cfg.MaxConcurrent)
	return m
}

// Submit enqueues without blocking; a full queue drops the request.
func (m *Manager) Submit(req *Request) error {
	queue := m.backgroundQueue
	if req.Priority == PriorityCritical {
		queue = m.criticalQueue
	}

	m.mu.Lock()
	if req.Priority == PriorityCritical {
		m.stats.CriticalEnqueued++
	} else {
		m.stats.BackgroundEnqueued++
	}
	m.mu.Unlock()

	select {
	case queue <- req:
		return nil
	default:
		m.mu.Lock()
		if req.Priority == PriorityCritical {
			m.stats.CriticalDropped++
		} else {
			m.stats.BackgroundDropped++
		}
		m.mu.Unlock()
		m.log.Warn("queue full, dropping request", "priority", req.Priority.String(), "request_id", req.ID)
		return ErrQueueFull
	}
}

// dispatcher always drains critical before background.
func (m *Manager) dispatcher() {
	defer m.wg.Done()

	for {
		var req *Request
		select {
		case <-m.stopCh:
			return
		case req = <-m.criticalQueue:
		case req = <-m.backgroundQueue:
			// A critical request may have landed while we picked background.
			select {
			case crit := <-m.criticalQueue:
				m.requeue(req)
				req = crit
			default:
			}
		}

		select {
		case <-m.stopCh:
			req.ErrorCh <- context.Canceled
			return
		case m.semaphore <- struct{}{}:
		}

		m.wg.Add(1)
		go m.processRequest(req)
	}
}

func (m *Manager) requeue(req *Request) {
	select {
	case m.backgroundQueue <- req:
	default:
		req.ErrorCh <- ErrQueueFull
	}
}

func (m *Manager) processRequest(req *Request) {
	defer func() {
		<-m.semaphore
		m.wg.Done()

		m.mu.Lock()
		if req.Priority == PriorityCritical {
			m.stats.CriticalProcessed++
		} else {
			m.stats.BackgroundProcessed++
		}
		m.mu.Unlock()
	}()

	start := time.Now()
	if err := req.Context.Err(); err != nil {
		req.ErrorCh <- err
		return
	}

	ctx, cancel := context.WithTimeout(req.Context, req.Timeout)
	defer cancel()

	var resp *Response
	err := m.breaker.Call(func() error {
		var callErr error
		resp, callErr = m.executeHTTPRequest(ctx, req)
		return callErr
	})
	if err != nil {
		if errors.Is(err, ErrTooManyRequests) {
			err = ErrCircuitOpen
		}
		m.log.Warn("request failed", "request_id", req.ID, "elapsed", time.Since(start).String(), "error", err)
		req.ErrorCh <- err
		return
	}

	m.log.Debug("request completed", "request_id", req.ID, "elapsed", time.Since(start).String())
	req.ResponseCh <- resp
}

// executeHTTPRequest treats transport errors and 5xx as breaker failures.
func (m *Manager) executeHTTPRequest(ctx context.Context, req *Request) (*Response, error) {
	jsonData, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)
	}

	httpResp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("llm returned status %d", httpResp.StatusCode)
	}
	return &Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

// Stats returns current queue statistics
func (m *Manager) Stats() QueueStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats
	s.CurrentQueueDepth = map[Priority]int{
		PriorityCritical:   len(m.criticalQueue),
		PriorityBackground: len(m.backgroundQueue),
	}
	return s
}

func (m *Manager) Breaker() *CircuitBreaker {
	return m.breaker
}

// Stop shuts the dispatcher down and waits for in-flight requests.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
		m.log.Info("llm queue stopped")
	})
}
