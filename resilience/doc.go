// Package resilience provides retry with exponential backoff and a bounded
// poller for asynchronous provider jobs.
//
//	job, attempts, err := resilience.Poll(ctx, resilience.PollConfig{
//	    Interval:    3 * time.Second,
//	    MaxAttempts: 100,
//	    Timeout:     5 * time.Minute,
//	}, func(ctx context.Context) (*Job, bool, error) {
//	    j, err := client.Status(ctx, id)
//	    return j, err == nil && j.Terminal(), err
//	})
package resilience
