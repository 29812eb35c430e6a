package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsLoggerForEachEnv(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		log, err := New(env)
		require.NoError(t, err, "env %s", env)
		assert.NotNil(t, log)
		log.Sync()
	}
}

func TestJSONEntriesAreStructured(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	log := zap.New(core)

	log.Info("product created",
		zap.String("product_id", "42"),
		zap.String("request_id", "req-123"),
	)
	require.NoError(t, log.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "product created", entry["msg"])
	assert.Equal(t, "42", entry["product_id"])
	assert.Equal(t, "req-123", entry["request_id"])
}
