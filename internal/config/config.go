// Package config provides configuration structures and loading for framepairs.
package config

// Config represents the complete application configuration.
type Config struct {
	Store      StoreConfig          `yaml:"store" mapstructure:"store"`
	Sampling   SamplingConfig       `yaml:"sampling" mapstructure:"sampling"`
	Jobs       map[string]JobConfig `yaml:"jobs" mapstructure:"jobs"`
	Processing ProcessingConfig     `yaml:"processing" mapstructure:"processing"`
	Logging    LoggingConfig        `yaml:"logging" mapstructure:"logging"`
}

// StoreConfig describes where published pair lists are written.
type StoreConfig struct {
	Driver             string `yaml:"driver" mapstructure:"driver"` // mysql or sqlite
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
	Path               string `yaml:"path" mapstructure:"path"` // sqlite database file
	Table              string `yaml:"table" mapstructure:"table"`
}

// RequestConfig is one sampling request as written in YAML.
type RequestConfig struct {
	Mode   string                 `yaml:"mode" mapstructure:"mode"`
	Params map[string]interface{} `yaml:"params" mapstructure:"params"`
}

// SamplingConfig holds the global sampling defaults.
type SamplingConfig struct {
	Bidirectional bool            `yaml:"bidirectional" mapstructure:"bidirectional"`
	OneWay        bool            `yaml:"one_way" mapstructure:"one_way"`
	Requests      []RequestConfig `yaml:"requests" mapstructure:"requests"`
}

// JobConfig describes one clip to sample.
type JobConfig struct {
	NumFrames     int               `yaml:"num_frames" mapstructure:"num_frames"`
	Frames        string            `yaml:"frames" mapstructure:"frames"`             // index space, e.g. "0-119"
	Active        string            `yaml:"active" mapstructure:"active"`             // active subset, empty means all
	ValidFrames   string            `yaml:"valid_frames" mapstructure:"valid_frames"` // upstream quality filter
	Bidirectional *bool             `yaml:"bidirectional,omitempty" mapstructure:"bidirectional"`
	OneWay        *bool             `yaml:"one_way,omitempty" mapstructure:"one_way"`
	FlowOps       []string          `yaml:"flow_ops" mapstructure:"flow_ops"` // mode names without params
	Requests      []RequestConfig   `yaml:"requests" mapstructure:"requests"`
	Processing    *ProcessingConfig `yaml:"processing,omitempty" mapstructure:"processing"`
}

// ProcessingConfig represents batch and concurrency settings.
type ProcessingConfig struct {
	BatchSize   int `yaml:"batch_size" mapstructure:"batch_size"`
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver:             "sqlite",
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
			Path:               "framepairs.db",
			Table:              "flow_pairs",
		},
		Sampling: SamplingConfig{
			Bidirectional: true,
			Requests: []RequestConfig{
				{Mode: "hierarchical2"},
			},
		},
		Processing: ProcessingConfig{
			BatchSize:   1000,
			Parallelism: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// IsBidirectional resolves the job flag against the global default.
func (jc *JobConfig) IsBidirectional(global SamplingConfig) bool {
	if jc.Bidirectional == nil {
		return global.Bidirectional
	}
	return *jc.Bidirectional
}

// IsOneWay resolves the job flag against the global default.
func (jc *JobConfig) IsOneWay(global SamplingConfig) bool {
	if jc.OneWay == nil {
		return global.OneWay
	}
	return *jc.OneWay
}

// GetJobRequests returns the job's requests: explicit requests first, then
// flow_ops names, falling back to the global list when both are empty.
func (jc *JobConfig) GetJobRequests(global SamplingConfig) []RequestConfig {
	var out []RequestConfig
	out = append(out, jc.Requests...)
	for _, op := range jc.FlowOps {
		out = append(out, RequestConfig{Mode: op})
	}
	if len(out) == 0 {
		out = append(out, global.Requests...)
	}
	return out
}

// GetJobProcessing returns the processing config for a job by name, falling back to global if not set.
func (c *Config) GetJobProcessing(jobName string) ProcessingConfig {
	job, err := c.GetJob(jobName)
	if err != nil {
		return c.Processing
	}
	return job.GetJobProcessing(c.Processing)
}

// GetJobProcessing returns the processing config for a job, falling back to global if not set.
func (jc *JobConfig) GetJobProcessing(global ProcessingConfig) ProcessingConfig {
	if jc.Processing == nil {
		return global
	}

	result := global
	if jc.Processing.BatchSize > 0 {
		result.BatchSize = jc.Processing.BatchSize
	}
	if jc.Processing.Parallelism > 0 {
		result.Parallelism = jc.Processing.Parallelism
	}
	return result
}
