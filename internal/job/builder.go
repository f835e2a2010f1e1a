// Package job resolves a configured clip into a frame range and a list of
// sampling requests.
package job

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/framerange"
	"github.com/dbsmedya/framepairs/internal/sampling"
)

// Job is a fully resolved sampling job.
type Job struct {
	Name          string
	Range         *framerange.Range // active set already restricted to valid frames
	Excluded      []int             // active frames dropped by valid_frames
	Requests      []sampling.Request
	Bidirectional bool
	OneWay        bool
	Processing    config.ProcessingConfig
}

// Builder constructs a Job from configuration.
type Builder struct {
	name string
	job  *config.JobConfig
	cfg  *config.Config
}

// NewBuilder creates a builder for the named job of cfg.
func NewBuilder(cfg *config.Config, name string) *Builder {
	b := &Builder{name: name, cfg: cfg}
	if cfg != nil {
		if jc, err := cfg.GetJob(name); err == nil {
			b.job = jc
		}
	}
	return b
}

// Build resolves the frame range and requests. Request parameters are not
// checked here; see Validate.
func (b *Builder) Build() (*Job, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	if b.job == nil {
		return nil, fmt.Errorf("job %q not found in configuration", b.name)
	}

	base, err := buildRange(b.job)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", b.name, err)
	}

	valid, err := framerange.ParseOptionalSet(b.job.ValidFrames)
	if err != nil {
		return nil, fmt.Errorf("job %q: valid_frames: %w", b.name, err)
	}
	fr := base.Intersection(valid)

	requests, err := BuildRequests(b.job.GetJobRequests(b.cfg.Sampling))
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", b.name, err)
	}

	return &Job{
		Name:          b.name,
		Range:         fr,
		Excluded:      base.Excluded(fr),
		Requests:      requests,
		Bidirectional: b.job.IsBidirectional(b.cfg.Sampling),
		OneWay:        b.job.IsOneWay(b.cfg.Sampling),
		Processing:    b.job.GetJobProcessing(b.cfg.Processing),
	}, nil
}

// Validate builds the job and resolves every request's parameters.
func (b *Builder) Validate() error {
	j, err := b.Build()
	if err != nil {
		return err
	}
	return j.checkRequests()
}

func (j *Job) checkRequests() error {
	for i, req := range j.Requests {
		if err := req.Validate(); err != nil {
			return fmt.Errorf("job %q: requests[%d]: %w", j.Name, i, err)
		}
	}
	return nil
}

// BuildFromConfig builds the named job and rejects it if any request has
// bad parameters.
func BuildFromConfig(cfg *config.Config, name string) (*Job, error) {
	j, err := NewBuilder(cfg, name).Build()
	if err != nil {
		return nil, err
	}
	if err := j.checkRequests(); err != nil {
		return nil, err
	}
	return j, nil
}

// BuildRequests converts configured requests into sampling requests. Mode
// names are looked up here; parameters are kept as given.
func BuildRequests(reqs []config.RequestConfig) ([]sampling.Request, error) {
	out := make([]sampling.Request, 0, len(reqs))
	for i, rc := range reqs {
		mode, err := sampling.ParseMode(rc.Mode)
		if err != nil {
			return nil, fmt.Errorf("requests[%d]: %w", i, err)
		}
		var params sampling.Params
		if len(rc.Params) > 0 {
			params = make(sampling.Params, len(rc.Params))
			for k, v := range rc.Params {
				params[k] = v
			}
		}
		out = append(out, sampling.NewRequest(mode, params))
	}
	return out, nil
}

// buildRange resolves the index space and active set of a job.
func buildRange(jc *config.JobConfig) (*framerange.Range, error) {
	active, err := framerange.ParseOptionalSet(jc.Active)
	if err != nil {
		return nil, fmt.Errorf("active: %w", err)
	}

	frames, err := framerange.ParseOptionalSet(jc.Frames)
	if err != nil {
		return nil, fmt.Errorf("frames: %w", err)
	}
	if !frames.IsSet() {
		return framerange.New(jc.NumFrames, active)
	}

	space := frames.Sorted()
	if jc.NumFrames > 0 {
		bounded := space[:0]
		for _, f := range space {
			if f < jc.NumFrames {
				bounded = append(bounded, f)
			}
		}
		space = bounded
	}
	return framerange.NewFromFrames(space, active)
}

// Tag names the output of a job the way the depth pipeline names its
// directories: R<active frames>_<modes joined by '-'>.
func (j *Job) Tag() string {
	names := make([]string, 0, len(j.Requests))
	for _, r := range j.Requests {
		names = append(names, r.Mode.String())
	}
	return fmt.Sprintf("R%s_%s", j.Range.Name(), strings.Join(names, "-"))
}

// Sample runs the job's requests through s, canonicalizing the result when
// the job asks for one-way pairs.
func (j *Job) Sample(s *sampling.Sampler) (*sampling.Result, error) {
	res, err := s.SampleDetailed(j.Requests, j.Range, j.Bidirectional)
	if err != nil {
		return nil, fmt.Errorf("job %q: %w", j.Name, err)
	}
	if j.OneWay {
		res.Pairs = sampling.ToOneWay(res.Pairs)
	}
	return res, nil
}
