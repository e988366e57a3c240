package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/seqtree/sdk/contracts"
)

func TestFileDestinationRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seqtree.log")

	log := NewZapLogger()
	log.SetDestination(contracts.FileLog, path)
	log.SetLevel(contracts.WarnLevel)

	log.Info("hidden", log.Field().String("request_id", "r-1"))
	log.Warn("shown",
		log.Field().String("request_id", "r-2"),
		log.Field().Int("height", 3),
		log.Field().Duration("elapsed", time.Millisecond),
		log.Field().Error("error", errors.New("boom")),
	)
	require.NoError(t, log.(*ZapLogger).current().Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"request_id":"r-2"`)
	assert.Contains(t, out, `"height":3`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestNopLoggerAcceptsFields(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Debug("nothing", log.Field().Bool("ok", true), nil)
		log.SetLevel(contracts.DebugLevel)
	})
}

func TestZapLevelMapping(t *testing.T) {
	assert.Equal(t, "debug", zapLevel(contracts.DebugLevel).String())
	assert.Equal(t, "info", zapLevel(contracts.InfoLevel).String())
	assert.Equal(t, "warn", zapLevel(contracts.WarnLevel).String())
	assert.Equal(t, "error", zapLevel(contracts.ErrorLevel).String())
	assert.Equal(t, "fatal", zapLevel(contracts.FatalLevel).String())
}
