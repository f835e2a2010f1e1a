package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/framepairs/internal/config"
	"github.com/dbsmedya/framepairs/internal/job"
)

// adhocJobName names the job assembled from command line flags.
const adhocJobName = "adhoc"

// jobFlags selects a job either from the config file or from flags.
type jobFlags struct {
	job           string
	numFrames     int
	modes         []string
	active        string
	valid         string
	bidirectional bool
	oneWay        bool
}

func (f *jobFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.job, "job", "j", "",
		"Job name from configuration file")
	c.Flags().IntVarP(&f.numFrames, "num-frames", "n", 0,
		"Number of frames for an ad-hoc job (ignores --config)")
	c.Flags().StringArrayVarP(&f.modes, "mode", "m", nil,
		"Sampling request for an ad-hoc job, e.g. hierarchical:min_dist=2,max_dist=16 (repeatable)")
	c.Flags().StringVar(&f.active, "active", "",
		"Active frames for an ad-hoc job, e.g. 0-10,20")
	c.Flags().StringVar(&f.valid, "valid", "",
		"Valid frames for an ad-hoc job")
	c.Flags().BoolVar(&f.bidirectional, "bidirectional", true,
		"Emit both orientations of every pair")
	c.Flags().BoolVar(&f.oneWay, "one-way", false,
		"Canonicalize pairs to first < second")
	c.MarkFlagsMutuallyExclusive("job", "num-frames")
}

// resolve returns the effective config and the built job. Request
// parameters are validated before the job is returned. Ad-hoc jobs skip
// config validation so that zero frames yield an empty pair list.
func (f *jobFlags) resolve(c *cobra.Command) (*config.Config, *job.Job, error) {
	var (
		cfg  *config.Config
		name string
		err  error
	)

	switch {
	case f.job != "":
		cfg, err = loadConfig()
		if err != nil {
			return nil, nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
		name = f.job
		if jc, ok := cfg.Jobs[name]; ok {
			if c.Flags().Changed("bidirectional") {
				jc.Bidirectional = &f.bidirectional
			}
			if c.Flags().Changed("one-way") {
				jc.OneWay = &f.oneWay
			}
			cfg.Jobs[name] = jc
		}
	case c.Flags().Changed("num-frames"):
		cfg, err = f.adhocConfig()
		if err != nil {
			return nil, nil, err
		}
		name = adhocJobName
	default:
		return nil, nil, fmt.Errorf("either --job or --num-frames is required")
	}

	j, err := job.BuildFromConfig(cfg, name)
	if err != nil {
		return nil, nil, err
	}
	return cfg, j, nil
}

func (f *jobFlags) adhocConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	o := GetCLIOverrides()
	cfg.ApplyOverrides(o.LogLevel, o.LogFormat, o.BatchSize, o.Parallelism)

	jc := config.JobConfig{
		NumFrames:     f.numFrames,
		Active:        f.active,
		ValidFrames:   f.valid,
		Bidirectional: &f.bidirectional,
		OneWay:        &f.oneWay,
	}
	for _, raw := range f.modes {
		rc, err := parseModeFlag(raw)
		if err != nil {
			return nil, err
		}
		jc.Requests = append(jc.Requests, rc)
	}
	cfg.Jobs = map[string]config.JobConfig{adhocJobName: jc}
	return cfg, nil
}

// parseModeFlag parses "name" or "name:key=value,key=value". Values that
// look like integers or booleans are converted.
func parseModeFlag(raw string) (config.RequestConfig, error) {
	name, rest, hasParams := strings.Cut(raw, ":")
	rc := config.RequestConfig{Mode: strings.TrimSpace(name)}
	if rc.Mode == "" {
		return rc, fmt.Errorf("invalid --mode %q: mode name is empty", raw)
	}
	if !hasParams || strings.TrimSpace(rest) == "" {
		return rc, nil
	}

	rc.Params = make(map[string]interface{})
	for _, kv := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return rc, fmt.Errorf("invalid --mode %q: expected key=value, got %q", raw, kv)
		}
		rc.Params[key] = parseParamValue(strings.TrimSpace(value))
	}
	return rc, nil
}

func parseParamValue(s string) interface{} {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// parseWindow parses "lo:hi" into a half-open frame window.
func parseWindow(s string) (int, int, error) {
	loStr, hiStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid window %q: expected lo:hi", s)
	}
	lo, err := strconv.Atoi(strings.TrimSpace(loStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window %q: %w", s, err)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(hiStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid window %q: %w", s, err)
	}
	if lo > hi {
		return 0, 0, fmt.Errorf("invalid window %q: lo > hi", s)
	}
	return lo, hi, nil
}
