// Package config holds the evaluator settings: label metrics, batch
// parallelism, confusion matrix options and logging.
package config

import (
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lgeval/metric"
)

// Config manages settings using Viper.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a configuration with defaults.
func NewConfig() *Config {
	v := viper.New()

	v.SetDefault("metric.node", metric.NameDefault)
	v.SetDefault("metric.edge", metric.NameDefault)
	v.SetDefault("metric.ignore", []string{})
	v.SetDefault("metric.select", []string{})

	v.SetDefault("batch.workers", runtime.NumCPU())
	v.SetDefault("batch.gt_first", false)

	v.SetDefault("confusion.primitive", false)
	v.SetDefault("confusion.object", false)
	v.SetDefault("confusion.sizes", []int{2, 3})
	v.SetDefault("confusion.object_sizes", []int{2})
	v.SetDefault("confusion.min_count", 1)

	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile merges settings from a file; the format follows its extension.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

func (c *Config) NodeMetric() string     { return c.v.GetString("metric.node") }
func (c *Config) EdgeMetric() string     { return c.v.GetString("metric.edge") }
func (c *Config) IgnoreLabels() []string { return c.v.GetStringSlice("metric.ignore") }
func (c *Config) SelectLabels() []string { return c.v.GetStringSlice("metric.select") }

func (c *Config) Workers() int  { return c.v.GetInt("batch.workers") }
func (c *Config) GTFirst() bool { return c.v.GetBool("batch.gt_first") }

func (c *Config) PrimitiveConfusion() bool { return c.v.GetBool("confusion.primitive") }
func (c *Config) ObjectConfusion() bool    { return c.v.GetBool("confusion.object") }
func (c *Config) ConfusionSizes() []int    { return c.v.GetIntSlice("confusion.sizes") }
func (c *Config) ObjectSizes() []int       { return c.v.GetIntSlice("confusion.object_sizes") }
func (c *Config) MinCount() int            { return c.v.GetInt("confusion.min_count") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set overrides a setting, e.g. from a command-line flag.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// MetricContext builds the label metric context from metric.* settings.
func (c *Config) MetricContext() (metric.Context, error) {
	node, err := metric.ByName(c.NodeMetric(), c.IgnoreLabels(), c.SelectLabels())
	if err != nil {
		return metric.Context{}, err
	}
	edge, err := metric.ByName(c.EdgeMetric(), c.IgnoreLabels(), c.SelectLabels())
	if err != nil {
		return metric.Context{}, err
	}
	return metric.NewContext().WithMetrics(node, edge), nil
}

// CreateLogger creates a console logger on stderr at the configured level.
// An unknown level means info.
func (c *Config) CreateLogger() zerolog.Logger {
	return c.NewLogger(os.Stderr)
}

// NewLogger is CreateLogger writing to w.
func (c *Config) NewLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}).Level(level).With().Timestamp().Str("service", "lgeval").Logger()
}
