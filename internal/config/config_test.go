package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully-defaulted config that passes Validate.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_ServerPort(t *testing.T) {
	tests := []struct {
		name    string
		port    int
		wantErr bool
	}{
		{"valid low", 1, false},
		{"valid high", 65535, false},
		{"zero", 0, true},
		{"too high", 65536, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_ServerMode(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = "production"
	assert.Error(t, cfg.Validate())

	for _, mode := range []string{"debug", "release", "test"} {
		cfg.Server.Mode = mode
		assert.NoError(t, cfg.Validate())
	}
}

func TestValidate_ResolverBaseURLRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Resolver.BaseURL = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver.base_url")
}

func TestValidate_RedisAddrRequired(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RenderDimensions(t *testing.T) {
	cfg := validConfig()
	cfg.Render2D.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Render3D.Height = -5
	assert.Error(t, cfg.Validate())
}

func TestValidate_Render3DLighting(t *testing.T) {
	cfg := validConfig()
	cfg.Render3D.Ambient = 1.5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render3d.ambient")

	cfg = validConfig()
	cfg.Render3D.Specular = -0.1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Render3D.Antialias = 5
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render3d.antialias")
}

func TestValidate_OrientationThresholdOrdering(t *testing.T) {
	cfg := validConfig()
	cfg.Orientation.ZoomMediumExtent = 6.0 // exceeds the large extent of 5.0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zoom_medium_extent")
}

func TestValidate_OrientationBuffersPositive(t *testing.T) {
	cfg := validConfig()
	cfg.Orientation.ZoomSmallBuffer = -1
	assert.Error(t, cfg.Validate())
}

func TestValidate_LogLevelAndFormat(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestApplyDefaults_NilIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Orientation.TargetAngleDeg = degrees(45)
	cfg.Redis.KeyPrefix = "custom"
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 45.0, *cfg.Orientation.TargetAngleDeg)
	assert.Equal(t, "custom", cfg.Redis.KeyPrefix)
}

func TestApplyDefaults_ZeroAngleSurvives(t *testing.T) {
	// 0° is a deliberate setting (no artistic tilt, target along +x) and must
	// not be mistaken for "unset" and overwritten with the default.
	cfg := &Config{}
	cfg.Orientation.TargetAngleDeg = degrees(0)
	cfg.Orientation.TiltXDeg = degrees(0)
	cfg.Orientation.TiltYDeg = degrees(0)
	ApplyDefaults(cfg)

	assert.Equal(t, 0.0, *cfg.Orientation.TargetAngleDeg)
	assert.Equal(t, 0.0, *cfg.Orientation.TiltXDeg)
	assert.Equal(t, 0.0, *cfg.Orientation.TiltYDeg)
}

func TestApplyDefaults_OrientationDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, 90.0, *cfg.Orientation.TargetAngleDeg)
	assert.Equal(t, 10.0, *cfg.Orientation.TiltXDeg)
	assert.Equal(t, 20.0, *cfg.Orientation.TiltYDeg)
	assert.Equal(t, 5.0, cfg.Orientation.ZoomLargeExtent)
	assert.Equal(t, 3.0, cfg.Orientation.ZoomMediumExtent)
	assert.Equal(t, 1.5, cfg.Orientation.ZoomLargeBuffer)
	assert.Equal(t, 2.0, cfg.Orientation.ZoomMediumBuffer)
	assert.Equal(t, 2.5, cfg.Orientation.ZoomSmallBuffer)
}
