package sampling

import (
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/dbsmedya/framepairs/internal/logger"
)

// FrameRange maps relative indices to frame identifiers and knows which
// frames are active.
type FrameRange interface {
	// Len is the number of indices in the sampling space.
	Len() int
	// IndexToFrame maps an index in [0, Len()) to its frame identifier.
	IndexToFrame(i int) int
	// Contains reports whether a frame identifier is in the active set.
	Contains(frame int) bool
}

// RequestStats describes what one request contributed before merging.
type RequestStats struct {
	Request       Request
	RelativePairs int
	Levels        []int
}

// Result is the outcome of SampleDetailed.
type Result struct {
	Pairs         PairSet
	Requests      []RequestStats
	RelativePairs int // size of the union over relative indices
	Filtered      int // mapped pairs dropped for having no active endpoint
}

// Sampler combines the output of several requests over one frame range.
type Sampler struct {
	parallelism int
	logger      *logger.Logger
}

// NewSampler creates a sampler. parallelism <= 0 uses GOMAXPROCS; a nil
// logger discards output.
func NewSampler(parallelism int, log *logger.Logger) *Sampler {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Sampler{parallelism: parallelism, logger: log}
}

// Sample generates every request over [0, fr.Len()), unions the results,
// maps them to frame identifiers and keeps pairs with an active endpoint.
// If any request fails nothing is returned.
func (s *Sampler) Sample(requests []Request, fr FrameRange, bidirectional bool) (PairSet, error) {
	res, err := s.SampleDetailed(requests, fr, bidirectional)
	if err != nil {
		return nil, err
	}
	return res.Pairs, nil
}

type requestOutcome struct {
	index int
	pairs PairSet
}

// SampleDetailed is Sample with per-request statistics.
func (s *Sampler) SampleDetailed(requests []Request, fr FrameRange, bidirectional bool) (*Result, error) {
	if fr == nil {
		return nil, ErrNilFrameRange
	}
	numFrames := fr.Len()

	p := pool.NewWithResults[requestOutcome]().
		WithErrors().
		WithFirstError().
		WithMaxGoroutines(s.parallelism)
	for i, req := range requests {
		i, req := i, req
		p.Go(func() (requestOutcome, error) {
			pairs, err := Generate(numFrames, bidirectional, req)
			if err != nil {
				return requestOutcome{}, err
			}
			return requestOutcome{index: i, pairs: pairs}, nil
		})
	}
	outcomes, err := p.Wait()
	if err != nil {
		return nil, err
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })

	res := &Result{
		Pairs:    make(PairSet),
		Requests: make([]RequestStats, 0, len(outcomes)),
	}
	rel := make(PairSet)
	for _, o := range outcomes {
		req := requests[o.index]
		res.Requests = append(res.Requests, RequestStats{
			Request:       req,
			RelativePairs: o.pairs.Len(),
			Levels:        requestLevels(numFrames, req),
		})
		rel.Union(o.pairs)
		s.logger.WithMode(req.Mode.String()).Debugf("Request %s produced %d relative pairs", req, o.pairs.Len())
	}
	res.RelativePairs = rel.Len()

	for rp := range rel {
		pair := Pair{First: fr.IndexToFrame(rp.First), Second: fr.IndexToFrame(rp.Second)}
		if fr.Contains(pair.First) || fr.Contains(pair.Second) {
			res.Pairs.Add(pair)
		} else {
			res.Filtered++
		}
	}

	s.logger.Infof("Sampled %d frame pairs.", res.Pairs.Len())
	return res, nil
}

// requestLevels reports the dyadic levels a request visits; nil for
// exhaustive.
func requestLevels(numFrames int, req Request) []int {
	switch req.Mode {
	case Consecutive:
		return Levels(1, 1)
	case Hierarchical, HierarchicalWithMidpoint:
		opts, err := req.hierarchicalOptions()
		if err != nil {
			return nil
		}
		maxDist := numFrames - 1
		if opts.MaxDist != nil {
			maxDist = *opts.MaxDist
		}
		return Levels(opts.MinDist, maxDist)
	default:
		return nil
	}
}
