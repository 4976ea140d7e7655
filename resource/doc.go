// Package resource governs the resources hammy's bulk operations consume.
//
//   - Memory: fail-fast budget for large results such as distance matrices.
//   - Jobs: a cap on concurrently running batch jobs.
//   - IO: a token bucket for library transfers to and from blob stores, applied through
//     Reader and Writer.
//
// All methods are safe for concurrent use, and a nil *Controller is valid: every method
// becomes a no-op. Callers can keep the controller optional without nil checks.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   256 << 20,
//	    MaxConcurrentJobs:  2,
//	    IOLimitBytesPerSec: 50 << 20,
//	})
//	if err := rc.AcquireMemory(n * n * 8); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(n * n * 8)
package resource
