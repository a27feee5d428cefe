// Package health reports the health of keep-alive caches.
//
// A Checker reports a Status: Healthy, Degraded, or Unhealthy. CacheChecker
// inspects anything exposing Len, Max and Verify, which includes
// *keepalive.Controller and *cache.Store:
//
//	check := health.NewCacheChecker("tabs", ctrl, health.CacheCheckerConfig{
//	    WarningRatio: 0.9,
//	})
//
//	result := check.Check(ctx)
//	if result.Status == health.StatusUnhealthy {
//	    log.Printf("cache corrupt: %v", result.Error)
//	}
//
// Checks are pure reads and never modify the cache.
package health
