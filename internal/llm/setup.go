package llm

import (
	"decision-coach/internal/config"
	"decision-coach/internal/kv"
	"decision-coach/internal/logger"
)

// NewFromConfig wires the queue, client, cache and quota. Quota counters live
// in state, responses in cache. When the remote
// path is disabled the enhancer only ever returns rule-based results. The
// returned stop func is never nil.
func NewFromConfig(cfg config.LLMConfig, state, cache kv.Store, rec Recorder, clock Clock, log *logger.Logger) (*Enhancer, func()) {
	if !cfg.Enabled || cfg.URL == "" {
		log.Info("llm enhancement disabled, using rule-based engine only")
		return NewEnhancer(nil, nil, nil, rec, log), func() {}
	}

	qcfg := DefaultConfig()
	qcfg.MaxConcurrent = cfg.MaxConcurrent
	qcfg.CriticalTimeout = cfg.Timeout()

	breaker := NewCircuitBreaker(qcfg.FailureThreshold, qcfg.OpenTimeout, clock, log)
	manager := NewManager(qcfg, breaker, log)
	client := NewClient(manager, PriorityCritical, qcfg.CriticalTimeout, cfg.URL, cfg.Model, cfg.APIKey)

	log.Info("llm enhancement enabled", "url", cfg.URL, "model", cfg.Model, "daily_limit", cfg.DailyLimit)
	return NewEnhancer(client, NewCache(cache, cfg.CacheTTL()), NewQuota(state, cfg.DailyLimit, clock), rec, log), manager.Stop
}
