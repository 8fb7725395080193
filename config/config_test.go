package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lgeval/config"
	"github.com/katalvlaran/lgeval/metric"
)

func TestNewConfig_Defaults(t *testing.T) {
	c := config.NewConfig()
	assert.Equal(t, metric.NameDefault, c.NodeMetric())
	assert.Equal(t, metric.NameDefault, c.EdgeMetric())
	assert.Empty(t, c.IgnoreLabels())
	assert.Positive(t, c.Workers())
	assert.False(t, c.GTFirst())
	assert.Equal(t, []int{2, 3}, c.ConfusionSizes())
	assert.Equal(t, []int{2}, c.ObjectSizes())
	assert.Equal(t, 1, c.MinCount())
	assert.Equal(t, "info", c.LogLevel())

	ctx, err := c.MetricContext()
	require.NoError(t, err)
	assert.Equal(t, metric.NewContext(), ctx)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lgeval.yaml")
	data := `metric:
  node: synonym
  edge: filtered
  ignore: ["*M", "*C"]
batch:
  workers: 3
  gt_first: true
confusion:
  sizes: [1, 2]
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c := config.NewConfig()
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, 3, c.Workers())
	assert.True(t, c.GTFirst())
	assert.Equal(t, []int{1, 2}, c.ConfusionSizes())
	assert.Equal(t, []string{"*M", "*C"}, c.IgnoreLabels())
	assert.Equal(t, 1, c.MinCount())

	ctx, err := c.MetricContext()
	require.NoError(t, err)
	assert.IsType(t, metric.Synonym{}, ctx.Node)
	assert.IsType(t, metric.Filtered{}, ctx.Edge)
	assert.True(t, ctx.EdgesAgree([]string{"R", "*M"}, []string{"R"}))
}

func TestLoadFromFile_Missing(t *testing.T) {
	c := config.NewConfig()
	assert.Error(t, c.LoadFromFile(filepath.Join(t.TempDir(), "none.yaml")))
}

func TestMetricContext_Unknown(t *testing.T) {
	c := config.NewConfig()
	c.Set("metric.edge", "fuzzy")
	_, err := c.MetricContext()
	require.ErrorIs(t, err, metric.ErrUnknownMetric)
}

func TestNewLogger(t *testing.T) {
	c := config.NewConfig()
	c.Set("logging.level", "warn")

	var b strings.Builder
	log := c.NewLogger(&b)
	log.Info().Msg("hidden")
	log.Warn().Str("source", "a.lg").Msg("shown")
	assert.NotContains(t, b.String(), "hidden")
	assert.Contains(t, b.String(), "shown")
	assert.Contains(t, b.String(), "source=a.lg")

	c.Set("logging.level", "loud")
	b.Reset()
	log = c.NewLogger(&b)
	log.Debug().Msg("hidden")
	log.Info().Msg("info")
	assert.Equal(t, 1, strings.Count(b.String(), "\n"))
}
