package service

import (
	"context"
	"log"
	"sync"

	"lading/internal/domain"
)

// BatchItemResult is the per-file outcome of a batch parse. Exactly one of
// Result or Error is set.
type BatchItemResult struct {
	FileName string       `json:"file_name"`
	Result   *ParseResult `json:"result,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// BatchResult summarizes a batch parse run.
type BatchResult struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
}

// ParseBatch parses many files concurrently under a bounded worker pool.
// One file failing never aborts the others; failures are reported per item.
func (s *parseService) ParseBatch(ctx context.Context, inputs []ParseFileInput) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, domain.ErrNoValidFiles
	}
	if len(inputs) > s.parseCfg.BatchMaxFiles {
		return nil, domain.ErrBatchSizeExceeded
	}

	workers := s.parseCfg.BatchMaxWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	results := make([]BatchItemResult, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		input := inputs[i]
		idx := i

		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			item := BatchItemResult{FileName: input.FileName}
			result, err := s.ParseDocumentMulti(ctx, input)
			if err != nil {
				log.Printf("parseService.ParseBatch: file %s failed: %v", input.FileName, err)
				item.Error = err.Error()
			} else {
				item.Result = result
			}
			results[idx] = item
		}()
	}
	wg.Wait()

	batch := &BatchResult{Total: len(inputs), Items: results}
	for _, item := range results {
		if item.Error == "" {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	log.Printf("parseService.ParseBatch: %d files, %d succeeded, %d failed", batch.Total, batch.Succeeded, batch.Failed)
	return batch, nil
}
