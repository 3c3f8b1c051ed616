package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("METIS_LLM_ENABLED", "true")
	t.Setenv("METIS_LLM_MODEL", "qwen2.5")
	t.Setenv("METIS_LLM_TIMEOUT_MS", "2500")
	t.Setenv("METIS_LLM_RANK_TIMEOUT_MS", "4000")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "qwen2.5", cfg.Model)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskRank))
}

func TestTaskTimeout_FallsBackToGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 7000
	cfg.Tasks[TaskEstimate] = TaskConfig{Temperature: 0.3}

	assert.Equal(t, 7000, cfg.TaskTimeout(TaskEstimate))
	assert.Equal(t, 7000, cfg.TaskTimeout(TaskType("unknown")))
}
