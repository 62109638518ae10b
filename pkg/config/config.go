package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is returned when a setting is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// S3Config holds the object storage settings used to publish renders
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Custom endpoint for S3-compatible stores; empty uses AWS
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix for uploaded objects
}

// Config holds every setting of a render
type Config struct {
	Scene                     string
	Width                     int
	SamplesPerPixel           int
	MaxDepth                  int
	RussianRouletteMinBounces int // 0 disables Russian roulette
	Workers                   int // 0 uses every CPU
	Seed                      int64
	UseBVH                    bool
	Sequential                bool
	Output                    string
	ThumbnailWidth            int // 0 disables the thumbnail
	TexturePath               string
	Port                      int       // Web server port
	S3                        *S3Config // nil when uploads are disabled
}

// Default returns the built-in defaults
func Default() Config {
	return Config{
		Scene:           "random",
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            1,
		UseBVH:          true,
		Output:          "output/render.png",
		Port:            8080,
	}
}

// Load reads envFile (a missing file is not an error) and then the RT_* environment
// variables over the defaults. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	env := envReader{}

	env.readString("RT_SCENE", &cfg.Scene)
	env.readInt("RT_WIDTH", &cfg.Width)
	env.readInt("RT_SAMPLES", &cfg.SamplesPerPixel)
	env.readInt("RT_DEPTH", &cfg.MaxDepth)
	env.readInt("RT_RR_MIN_BOUNCES", &cfg.RussianRouletteMinBounces)
	env.readInt("RT_WORKERS", &cfg.Workers)
	env.readInt64("RT_SEED", &cfg.Seed)
	env.readBool("RT_BVH", &cfg.UseBVH)
	env.readBool("RT_SEQUENTIAL", &cfg.Sequential)
	env.readString("RT_OUTPUT", &cfg.Output)
	env.readInt("RT_THUMBNAIL_WIDTH", &cfg.ThumbnailWidth)
	env.readString("RT_TEXTURE", &cfg.TexturePath)
	env.readInt("RT_PORT", &cfg.Port)

	if env.err != nil {
		return Config{}, env.err
	}

	if bucket := os.Getenv("RT_S3_BUCKET"); bucket != "" {
		cfg.S3 = &S3Config{
			Bucket:    bucket,
			Region:    getEnv("RT_S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("RT_S3_ENDPOINT"),
			AccessKey: os.Getenv("RT_S3_ACCESS_KEY"),
			SecretKey: os.Getenv("RT_S3_SECRET_KEY"),
			Prefix:    os.Getenv("RT_S3_PREFIX"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every numeric setting is in range
func (c Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene name is empty", ErrInvalidConfig)
	case c.Width < 1:
		return fmt.Errorf("%w: width must be at least 1, got %d", ErrInvalidConfig, c.Width)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max depth must be at least 1, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.RussianRouletteMinBounces < 0:
		return fmt.Errorf("%w: russian roulette bounces must not be negative, got %d", ErrInvalidConfig, c.RussianRouletteMinBounces)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.ThumbnailWidth < 0:
		return fmt.Errorf("%w: thumbnail width must not be negative, got %d", ErrInvalidConfig, c.ThumbnailWidth)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port out of range: %d", ErrInvalidConfig, c.Port)
	}
	return nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// envReader overwrites settings from set variables and keeps the first parse error
type envReader struct {
	err error
}

func (r *envReader) lookup(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	value, ok := os.LookupEnv(key)
	return value, ok && value != ""
}

func (r *envReader) readString(key string, target *string) {
	if value, ok := r.lookup(key); ok {
		*target = value
	}
}

func (r *envReader) readInt(key string, target *int) {
	value, ok := r.lookup(key)
	if !ok {
		return
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*target = parsed
}

func (r *envReader) readInt64(key string, target *int64) {
	value, ok := r.lookup(key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*target = parsed
}

func (r *envReader) readBool(key string, target *bool) {
	value, ok := r.lookup(key)
	if !ok {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	*target = parsed
}
