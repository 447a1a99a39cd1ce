package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/series"
)

const (
	DefaultPrefix     = "solution"
	DefaultTitle      = "Solution Value"
	DefaultOutput     = "animation.gif"
	DefaultIntervalMs = 100
	DefaultColormap   = "seismic"
	DefaultScale      = 4
)

// Job modes.
const (
	ModeSeries     = "series"
	ModeDifference = "difference"
)

// Job is one visualization run: which snapshot series to read, how to
// combine it, and what artifact to produce.
type Job struct {
	DataDir    string    `yaml:"data_dir"`
	Prefix     string    `yaml:"prefix"`
	RefPrefix  string    `yaml:"ref_prefix"`
	Mode       string    `yaml:"mode"`
	Steps      StepRange `yaml:"steps"`
	Exclude    [][2]int  `yaml:"exclude,omitempty"`
	Title      string    `yaml:"title"`
	Output     string    `yaml:"output"`
	IntervalMs int       `yaml:"interval_ms"`
	Colormap   string    `yaml:"colormap"`
	Scale      int       `yaml:"scale"`
	Extent     Extent    `yaml:"extent"`
}

// StepRange names the snapshot steps of a job. An explicit List wins;
// otherwise the range runs From..To inclusive, advancing By.
type StepRange struct {
	From int   `yaml:"from"`
	To   int   `yaml:"to"`
	By   int   `yaml:"by"`
	List []int `yaml:"list,omitempty"`
}

// Extent is the physical span of the grid, used for axis labels.
type Extent struct {
	X0 float64 `yaml:"x0"`
	X1 float64 `yaml:"x1"`
	Y0 float64 `yaml:"y0"`
	Y1 float64 `yaml:"y1"`
}

func DefaultJob() *Job {
	return &Job{
		Prefix:     DefaultPrefix,
		Mode:       ModeSeries,
		Title:      DefaultTitle,
		Output:     DefaultOutput,
		IntervalMs: DefaultIntervalMs,
		Colormap:   DefaultColormap,
		Scale:      DefaultScale,
		Extent:     Extent{X0: 0, X1: 2, Y0: -2, Y1: 2},
	}
}

func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job := DefaultJob()
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, err
	}
	return job, nil
}

func Save(path string, job *Job) error {
	data, err := yaml.Marshal(job)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve expands the job's step range into the explicit ordered list.
func (s StepRange) Resolve() ([]int, error) {
	if len(s.List) > 0 {
		if err := series.CheckSteps(s.List); err != nil {
			return nil, err
		}
		return s.List, nil
	}
	return series.Steps(s.From, s.To, s.By)
}

// Validate rejects jobs that cannot run, before any file is touched.
func (j *Job) Validate() error {
	if j.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if j.Prefix == "" {
		return fmt.Errorf("config: prefix is required")
	}
	switch j.Mode {
	case ModeSeries:
	case ModeDifference:
		if j.RefPrefix == "" {
			return fmt.Errorf("config: mode %s requires ref_prefix", ModeDifference)
		}
	default:
		return fmt.Errorf("config: unknown mode %q", j.Mode)
	}
	if j.Output == "" {
		return fmt.Errorf("config: output is required")
	}
	if j.IntervalMs <= 0 {
		return fmt.Errorf("config: interval_ms must be positive, got %d", j.IntervalMs)
	}
	if j.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %d", j.Scale)
	}
	if _, err := j.Steps.Resolve(); err != nil {
		return err
	}
	return nil
}

// Interval converts the job's frame delay to a duration.
func (j *Job) Interval() time.Duration {
	return time.Duration(j.IntervalMs) * time.Millisecond
}
