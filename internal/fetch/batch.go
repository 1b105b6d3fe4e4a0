package fetch

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"fantasy-gateway/internal/common/errors"
	"fantasy-gateway/internal/provider"
)

// BatchItem names one fetch within a batch. Key identifies the result slot
// for the caller; when empty the derived cache key is used. TTL and Tags
// follow the same registry defaulting as Fetch.
type BatchItem struct {
	Key    string
	Op     provider.Operation
	Params map[string]string
	TTL    time.Duration
	Tags   []string
}

// BatchResult carries the outcome for one batch item. Exactly one of Value
// and Err is meaningful.
type BatchResult struct {
	Key   string
	Value []byte
	Err   error
}

// FetchBatch runs one Fetch per item concurrently. Each item's failure is
// captured in its own result slot and never cancels the others. One deadline
// covers the whole batch; when it expires the batch returns a timeout error
// alongside whatever per-item results were reached.
func (o *Orchestrator) FetchBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, nil
	}

	timeout := o.config.BatchTimeout
	if timeout <= 0 {
		timeout = o.config.RequestTimeout * time.Duration(len(items))
	}
	batchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make([]BatchResult, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item BatchItem) {
			defer wg.Done()

			key := item.Key
			if key == "" {
				key = CacheKey(item.Op, item.Params)
			}

			value, err := o.Fetch(batchCtx, item.Op, item.Params, item.TTL, item.Tags)
			results[i] = BatchResult{Key: key, Value: value, Err: err}
		}(i, item)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	if stderrors.Is(batchCtx.Err(), context.DeadlineExceeded) {
		return results, errors.TimeoutError("batch fetch")
	}
	return results, nil
}
