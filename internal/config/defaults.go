// Package config provides configuration loading, defaults, and validation for
// wikimolgen.
package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	DefaultResolverBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultResolverRetries = 3

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "wikimol-renders"

	DefaultRenderWidth  = 1100
	DefaultRenderHeight = 1100

	DefaultTargetAngleDeg = 90.0
	DefaultTiltXDeg       = 10.0
	DefaultTiltYDeg       = 20.0

	DefaultZoomLargeExtent  = 5.0
	DefaultZoomMediumExtent = 3.0
	DefaultZoomLargeBuffer  = 1.5
	DefaultZoomMediumBuffer = 2.0
	DefaultZoomSmallBuffer  = 2.5

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills every zero-value field in cfg with the wikimolgen
// default. Fields that have already been set by the caller (non-zero values)
// are left unchanged so that explicit configuration always wins.
//
// It must be called after unmarshalling raw config data and before Validate()
// so that optional-but-defaulted fields are never seen as missing.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Resolver ──────────────────────────────────────────────────────────────
	if cfg.Resolver.BaseURL == "" {
		cfg.Resolver.BaseURL = DefaultResolverBaseURL
	}
	if cfg.Resolver.RequestTimeout == 0 {
		cfg.Resolver.RequestTimeout = 20 * time.Second
	}
	if cfg.Resolver.MaxRetries == 0 {
		cfg.Resolver.MaxRetries = DefaultResolverRetries
	}
	if cfg.Resolver.RetryBackoff == 0 {
		cfg.Resolver.RetryBackoff = 500 * time.Millisecond
	}
	if cfg.Resolver.UserAgent == "" {
		cfg.Resolver.UserAgent = "wikimolgen/1.0"
	}
	if cfg.Resolver.CacheTTL == 0 {
		cfg.Resolver.CacheTTL = 24 * time.Hour
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = time.Hour
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "wikimol"
	}
	// DB is an int; 0 is a valid explicit value so we cannot distinguish "not
	// set" from "set to 0".  We leave it as-is (0 is also the default).

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = time.Hour
	}

	// ── Render2D ──────────────────────────────────────────────────────────────
	if cfg.Render2D.Width == 0 {
		cfg.Render2D.Width = DefaultRenderWidth
	}
	if cfg.Render2D.Height == 0 {
		cfg.Render2D.Height = DefaultRenderHeight
	}
	if cfg.Render2D.Scale == 0 {
		// Fraction of the canvas the structure fills before the margin.
		cfg.Render2D.Scale = 0.9
	}
	if cfg.Render2D.Margin == 0 {
		cfg.Render2D.Margin = 40
	}
	if cfg.Render2D.LineWidth == 0 {
		cfg.Render2D.LineWidth = 2.5
	}
	// FontSize deliberately has no default: zero means "derive from the
	// average bond length", which scales better than any fixed size.
	if cfg.Render2D.DefaultStyle == "" {
		cfg.Render2D.DefaultStyle = "wikipedia-bw"
	}

	// ── Render3D ──────────────────────────────────────────────────────────────
	if cfg.Render3D.Width == 0 {
		cfg.Render3D.Width = DefaultRenderWidth
	}
	if cfg.Render3D.Height == 0 {
		cfg.Render3D.Height = DefaultRenderHeight
	}
	// Radii are in conformer units; the renderer scales them to pixels.
	if cfg.Render3D.StickRadius == 0 {
		cfg.Render3D.StickRadius = 0.12
	}
	if cfg.Render3D.AtomRadius == 0 {
		cfg.Render3D.AtomRadius = 0.25
	}
	if cfg.Render3D.SphereScale == 0 {
		cfg.Render3D.SphereScale = 1.0
	}
	if cfg.Render3D.Ambient == 0 {
		cfg.Render3D.Ambient = 0.35
	}
	if cfg.Render3D.Direct == 0 {
		cfg.Render3D.Direct = 0.65
	}
	if cfg.Render3D.Specular == 0 {
		cfg.Render3D.Specular = 0.25
	}
	if cfg.Render3D.Antialias == 0 {
		cfg.Render3D.Antialias = 2
	}
	if cfg.Render3D.DefaultStyle == "" {
		cfg.Render3D.DefaultStyle = "cpk-standard"
	}

	// ── Orientation ───────────────────────────────────────────────────────────
	// Angles are pointers: only a nil (unconfigured) field gets the default,
	// so an explicit 0° survives.
	if cfg.Orientation.TargetAngleDeg == nil {
		cfg.Orientation.TargetAngleDeg = degrees(DefaultTargetAngleDeg)
	}
	if cfg.Orientation.TiltXDeg == nil {
		cfg.Orientation.TiltXDeg = degrees(DefaultTiltXDeg)
	}
	if cfg.Orientation.TiltYDeg == nil {
		cfg.Orientation.TiltYDeg = degrees(DefaultTiltYDeg)
	}
	if cfg.Orientation.ZoomLargeExtent == 0 {
		cfg.Orientation.ZoomLargeExtent = DefaultZoomLargeExtent
	}
	if cfg.Orientation.ZoomMediumExtent == 0 {
		cfg.Orientation.ZoomMediumExtent = DefaultZoomMediumExtent
	}
	if cfg.Orientation.ZoomLargeBuffer == 0 {
		cfg.Orientation.ZoomLargeBuffer = DefaultZoomLargeBuffer
	}
	if cfg.Orientation.ZoomMediumBuffer == 0 {
		cfg.Orientation.ZoomMediumBuffer = DefaultZoomMediumBuffer
	}
	if cfg.Orientation.ZoomSmallBuffer == 0 {
		cfg.Orientation.ZoomSmallBuffer = DefaultZoomSmallBuffer
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// degrees boxes an angle default for the pointer-typed orientation fields.
func degrees(v float64) *float64 { return &v }
