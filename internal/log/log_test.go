package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestGetSugaredLogger_BeforeInit(t *testing.T) {
	l := GetSugaredLogger()
	require.NotNil(t, l)
	assert.Same(t, l, GetSugaredLogger())
	assert.False(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))

	// helpers must not panic before Init
	Debugf("factor %s", "Cb")
	Infow("lookup", "site", "Gaspé")
	Sync()
}

func TestGetSugaredLogger_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	loggers := make([]*zap.SugaredLogger, 8)
	for i := range loggers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loggers[i] = GetSugaredLogger()
			Debugw("concurrent", "worker", i)
		}()
	}
	wg.Wait()
	for _, l := range loggers {
		assert.Same(t, loggers[0], l)
	}
}

func TestInit_Levels(t *testing.T) {
	t.Cleanup(func() { log = zap.NewNop().Sugar() })

	require.NoError(t, Init(false))
	assert.False(t, GetSugaredLogger().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, GetSugaredLogger().Desugar().Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Init(true))
	assert.True(t, GetSugaredLogger().Desugar().Core().Enabled(zapcore.DebugLevel))
	Sync()
}
