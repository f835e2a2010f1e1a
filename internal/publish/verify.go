package publish

import (
	"context"
	"errors"
	"fmt"
)

// ErrCountMismatch is returned when the stored row count differs from the
// number of pairs that were published.
var ErrCountMismatch = errors.New("stored pair count mismatch")

// VerifyResult holds the outcome of a count check.
type VerifyResult struct {
	Job      string
	RunID    string
	Expected int64
	Stored   int64
	Match    bool
}

// Verify counts the rows written by runID for job and compares the count
// with expected.
func (p *Publisher) Verify(ctx context.Context, job, runID string, expected int64) (*VerifyResult, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE job = ? AND run_id = ?", p.table)

	result := &VerifyResult{Job: job, RunID: runID, Expected: expected}
	if err := p.db.QueryRowContext(ctx, query, job, runID).Scan(&result.Stored); err != nil {
		return nil, fmt.Errorf("failed to count pairs of %q: %w", job, err)
	}
	result.Match = result.Stored == expected

	if !result.Match {
		p.logger.WithJob(job).WithRun(runID).Errorf("Verification failed: expected %d pairs, found %d", expected, result.Stored)
		return result, fmt.Errorf("%w: job %q run %s: expected %d, found %d",
			ErrCountMismatch, job, runID, expected, result.Stored)
	}
	p.logger.WithJob(job).WithRun(runID).Debugf("Verified %d stored pairs", result.Stored)
	return result, nil
}
