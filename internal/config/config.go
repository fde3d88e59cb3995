// Package config defines all configuration structures for wikimolgen.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ResolverConfig holds PubChem compound-resolution parameters.
type ResolverConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff"`
	UserAgent      string        `mapstructure:"user_agent"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters for
// rendered-image artifacts.
type MinIOConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	AccessKey     string        `mapstructure:"access_key"`
	SecretKey     string        `mapstructure:"secret_key"`
	Bucket        string        `mapstructure:"bucket"`
	UseSSL        bool          `mapstructure:"use_ssl"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// Render2DConfig holds 2D depiction parameters.
type Render2DConfig struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	Scale        float64 `mapstructure:"scale"`
	Margin       int     `mapstructure:"margin"`
	LineWidth    float64 `mapstructure:"line_width"`
	FontSize     float64 `mapstructure:"font_size"`
	DefaultStyle string  `mapstructure:"default_style"` // "wikipedia-bw" | "cpk-standard" | "dark"
}

// Render3DConfig holds 3D stick-projection parameters.  StickRadius and
// AtomRadius are in conformer coordinate units (ångströms) and are scaled to
// pixels at draw time.  The lighting fractions shade spheres and sticks;
// Antialias is a supersampling level from 0 (off) to 4.
type Render3DConfig struct {
	Width        int     `mapstructure:"width"`
	Height       int     `mapstructure:"height"`
	StickRadius  float64 `mapstructure:"stick_radius"`
	AtomRadius   float64 `mapstructure:"atom_radius"`
	SphereScale  float64 `mapstructure:"sphere_scale"`
	Ambient      float64 `mapstructure:"ambient"`
	Direct       float64 `mapstructure:"direct"`
	Specular     float64 `mapstructure:"specular"`
	Antialias    int     `mapstructure:"antialias"`
	DefaultStyle string  `mapstructure:"default_style"`
}

// OrientationConfig holds molecule-orientation tunables. The tilt offsets are
// applied on top of the computed principal-axis angles when producing a 3D
// view; the zoom thresholds drive padding selection by molecular extent.
// The angle fields are pointers because 0° is a meaningful setting (point
// along the x axis, no artistic tilt) that must stay distinguishable from
// "not configured".
type OrientationConfig struct {
	TargetAngleDeg   *float64 `mapstructure:"target_angle_deg"`
	TiltXDeg         *float64 `mapstructure:"tilt_x_deg"`
	TiltYDeg         *float64 `mapstructure:"tilt_y_deg"`
	ZoomLargeExtent  float64  `mapstructure:"zoom_large_extent"`
	ZoomMediumExtent float64  `mapstructure:"zoom_medium_extent"`
	ZoomLargeBuffer  float64  `mapstructure:"zoom_large_buffer"`
	ZoomMediumBuffer float64  `mapstructure:"zoom_medium_buffer"`
	ZoomSmallBuffer  float64  `mapstructure:"zoom_small_buffer"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level            string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format           string `mapstructure:"format"` // "json" | "text"
	Output           string `mapstructure:"output"`
	EnableCaller     bool   `mapstructure:"enable_caller"`
	EnableStacktrace bool   `mapstructure:"enable_stacktrace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for wikimolgen. Every
// infrastructure component and application service reads its settings from
// the relevant sub-struct.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Resolver    ResolverConfig    `mapstructure:"resolver"`
	Redis       RedisConfig       `mapstructure:"redis"`
	MinIO       MinIOConfig       `mapstructure:"minio"`
	Render2D    Render2DConfig    `mapstructure:"render2d"`
	Render3D    Render3DConfig    `mapstructure:"render3d"`
	Orientation OrientationConfig `mapstructure:"orientation"`
	Log         LogConfig         `mapstructure:"log"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the application.
func (c *Config) Validate() error {
	// Server
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	// Resolver
	if c.Resolver.BaseURL == "" {
		return fmt.Errorf("config: resolver.base_url is required")
	}
	if c.Resolver.MaxRetries < 0 {
		return fmt.Errorf("config: resolver.max_retries must be ≥ 0, got %d", c.Resolver.MaxRetries)
	}

	// Redis
	if c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("config: redis.db must be ≥ 0, got %d", c.Redis.DB)
	}

	// Render2D
	if c.Render2D.Width < 1 || c.Render2D.Height < 1 {
		return fmt.Errorf("config: render2d dimensions %dx%d must be positive", c.Render2D.Width, c.Render2D.Height)
	}

	// Render3D
	if c.Render3D.Width < 1 || c.Render3D.Height < 1 {
		return fmt.Errorf("config: render3d dimensions %dx%d must be positive", c.Render3D.Width, c.Render3D.Height)
	}
	for _, frac := range []struct {
		name  string
		value float64
	}{
		{"render3d.ambient", c.Render3D.Ambient},
		{"render3d.direct", c.Render3D.Direct},
		{"render3d.specular", c.Render3D.Specular},
	} {
		if frac.value < 0 || frac.value > 1 {
			return fmt.Errorf("config: %s %.2f is out of range [0, 1]", frac.name, frac.value)
		}
	}
	if c.Render3D.Antialias < 0 || c.Render3D.Antialias > 4 {
		return fmt.Errorf("config: render3d.antialias %d is out of range [0, 4]", c.Render3D.Antialias)
	}

	// Orientation
	if c.Orientation.ZoomMediumExtent > c.Orientation.ZoomLargeExtent {
		return fmt.Errorf("config: orientation.zoom_medium_extent %.2f must not exceed zoom_large_extent %.2f",
			c.Orientation.ZoomMediumExtent, c.Orientation.ZoomLargeExtent)
	}
	if c.Orientation.ZoomSmallBuffer <= 0 || c.Orientation.ZoomMediumBuffer <= 0 || c.Orientation.ZoomLargeBuffer <= 0 {
		return fmt.Errorf("config: orientation zoom buffers must all be positive")
	}

	// Log
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|text", c.Log.Format)
	}

	return nil
}
