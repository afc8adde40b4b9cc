package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dispatch/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(nil, "")

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 2*time.Minute, cfg.ResponseWindow)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.Equal(t, 15*time.Second, cfg.DispatchRetryEvery)
	assert.Equal(t, 100, cfg.SweepBatchSize)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "courier-notifications", cfg.KafkaCourierTopic)
}

func TestLoadConfig_EnvironmentThenFlags(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ASSIGNMENT_RESPONSE_WINDOW_MINUTES", "5")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := cmd.LoadConfig([]string{"--port", "9100", "--sweep-interval=10"}, "")

	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.ResponseWindow)
	assert.Equal(t, 10*time.Second, cfg.SweepInterval)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=fromfile\nASSIGNMENT_SWEEP_BATCH_SIZE=50\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_NAME")
		_ = os.Unsetenv("ASSIGNMENT_SWEEP_BATCH_SIZE")
	})

	cfg, err := cmd.LoadConfig(nil, path)

	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.DBName)
	assert.Equal(t, 50, cfg.SweepBatchSize)
	assert.Contains(t, cfg.DSN(), "dbname=fromfile")
}

func TestLoadConfig_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := cmd.LoadConfig(nil, filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("non numeric env", func(t *testing.T) {
		t.Setenv("ASSIGNMENT_SWEEP_INTERVAL_SECONDS", "soon")

		_, err := cmd.LoadConfig(nil, "")
		require.ErrorContains(t, err, "ASSIGNMENT_SWEEP_INTERVAL_SECONDS")
	})

	t.Run("zero window", func(t *testing.T) {
		_, err := cmd.LoadConfig([]string{"--response-window=0"}, "")
		require.ErrorContains(t, err, "response window")
	})

	t.Run("port out of range", func(t *testing.T) {
		_, err := cmd.LoadConfig([]string{"-p", "70000"}, "")
		require.ErrorContains(t, err, "invalid port")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := cmd.LoadConfig([]string{"--verbose"}, "")
		require.Error(t, err)
	})
}
