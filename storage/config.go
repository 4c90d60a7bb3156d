package storage

import (
	"errors"
	"fmt"

	"github.com/traduckxion/transcribe/util"
)

// Backends.
const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

const (
	DefaultProvider    = ProviderLocal
	DefaultBasePath    = "./data/media"
	DefaultRegion      = "us-east-1"
	DefaultMaxFileSize = int64(100 << 20)
)

// Config selects where recordings referenced by storage key live.
type Config struct {
	// Enabled turns on transcription by storage key.
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Provider string `mapstructure:"provider" json:"provider"`

	// BasePath roots the local backend.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// S3 and S3-compatible stores such as MinIO. Empty keys use the
	// default AWS credential chain.
	Bucket         string `mapstructure:"bucket" json:"bucket"`
	Region         string `mapstructure:"region" json:"region"`
	Endpoint       string `mapstructure:"endpoint" json:"endpoint"`
	AccessKey      string `mapstructure:"access_key" json:"-"`
	SecretKey      string `mapstructure:"secret_key" json:"-"`
	ForcePathStyle bool   `mapstructure:"force_path_style" json:"force_path_style"`

	// MaxFileSize bounds uploads and stored recordings, e.g. "250MB".
	MaxFileSize string `mapstructure:"max_file_size" json:"max_file_size"`
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Provider = util.Coalesce(c.Provider, DefaultProvider)
	c.BasePath = util.Coalesce(c.BasePath, DefaultBasePath)
	c.Region = util.Coalesce(c.Region, DefaultRegion)
}

// MaxBytes is MaxFileSize in bytes, DefaultMaxFileSize when unset or
// unparseable.
func (c *Config) MaxBytes() int64 {
	return util.ParseSize(c.MaxFileSize, DefaultMaxFileSize)
}

// Validate checks the settings of the selected backend.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderLocal:
		if c.BasePath == "" {
			return errors.New("storage: base_path is required for the local provider")
		}
		return nil
	case ProviderS3:
		var errs []error
		if c.Bucket == "" {
			errs = append(errs, errors.New("bucket is required"))
		}
		if c.Region == "" {
			errs = append(errs, errors.New("region is required"))
		}
		if (c.AccessKey == "") != (c.SecretKey == "") {
			errs = append(errs, errors.New("access_key and secret_key must be set together"))
		}
		if len(errs) > 0 {
			return fmt.Errorf("storage: s3: %w", errors.Join(errs...))
		}
		return nil
	default:
		return fmt.Errorf("storage: unsupported provider %q", c.Provider)
	}
}
