package cache

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"io"
)

var log = logger.GetLogger("cache")

// Label values of dfarm_cache_requests_total
const (
	policySimple    = "simple"
	policyLimited   = "limited"
	policyBlacklist = "blacklist"

	resultHit       = "hit"
	resultMiss      = "miss"
	resultBypass    = "bypass"
	resultOversized = "oversized"
)

// record increments the request counter of a policy.
func record(policy, result string) {
	metrics.GetOrCreateCounter(counterName(policy, result)).Inc()
}

func counterName(policy, result string) string {
	return fmt.Sprintf(`dfarm_cache_requests_total{policy=%q,result=%q}`, policy, result)
}

func hitOrMiss(missed bool) string {
	if missed {
		return resultMiss
	}
	return resultHit
}

// Requests returns the number of requests a policy answered with the given result
// (one of hit, miss, bypass and oversized).
func Requests(policy, result string) uint64 {
	return metrics.GetOrCreateCounter(counterName(policy, result)).Get()
}

// WriteMetrics writes all cache counters in Prometheus text format to w.
func WriteMetrics(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
