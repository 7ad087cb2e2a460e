package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuathan/stock-signals/internal/config"
)

func TestNewBuildsConfiguredEngines(t *testing.T) {
	cfg := config.Config{
		Strategies: []string{"macross", "rsmacd"},
		MACross:    config.DefaultMACross(),
		RSMACD:     config.DefaultRSMACD(),
	}

	engines, err := New(cfg)
	require.NoError(t, err)
	require.Len(t, engines, 2)
	assert.Equal(t, "macross", engines[0].Name())
	assert.Equal(t, "rsmacd", engines[1].Name())
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	cfg := config.Config{
		Strategies: []string{"momentum"},
		MACross:    config.DefaultMACross(),
		RSMACD:     config.DefaultRSMACD(),
	}

	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "momentum")
}

func TestNewSurfacesEngineConfigErrors(t *testing.T) {
	cfg := config.Config{
		Strategies: []string{"macross"},
		MACross:    config.MACrossConfig{FastWindow: 25, SlowWindow: 5, VolFastWindow: 5, VolSlowWindow: 60},
		RSMACD:     config.DefaultRSMACD(),
	}

	_, err := New(cfg)
	assert.Error(t, err)
}
