package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite  = "sqlite"
	BackendMongo   = "mongo"
	BackendPostGIS = "postgis"

	SourceFeed    = "feed"
	SourceTeasers = "teasers"
)

type Config struct {
	LogLevel     string        `env:"LOG_LEVEL"     envDefault:"info"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT"  envDefault:"20s"`
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"30s"`

	Headlines Headlines
	Geo       Geo
}

type Headlines struct {
	Source         string `env:"HEADLINES_SOURCE" envDefault:"feed"`
	FeedURL        string `env:"FEED_URL"         envDefault:"https://www.heise.de/newsticker/heise-atom.xml"`
	TeaserURL      string `env:"TEASER_URL"       envDefault:"https://heise.de/newsticker/"`
	TeaserSelector string `env:"TEASER_SELECTOR"  envDefault:"article.a-article-teaser"`
}

type Geo struct {
	Backend         string `env:"GEO_BACKEND"      envDefault:"sqlite"`
	DBPath          string `env:"DB_PATH"          envDefault:"db.sqlite"`
	MongoURI        string `env:"MONGO_URI"        envDefault:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"MONGO_DATABASE"   envDefault:"test"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"geoname"`
	PostgresDSN     string `env:"POSTGRES_DSN"`
	LandmarkPattern string `env:"LANDMARK_PATTERN" envDefault:"Köln.*Dom"`
	FeatureCode     string `env:"FEATURE_CODE"     envDefault:"HTL"`
	NearestLimit    int    `env:"NEAREST_LIMIT"    envDefault:"10"`
	GeoNamesFile    string `env:"GEONAMES_FILE"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.Headlines.Source {
	case SourceFeed, SourceTeasers:
	default:
		errs = append(errs, fmt.Errorf("HEADLINES_SOURCE must be %q or %q, got %q",
			SourceFeed, SourceTeasers, c.Headlines.Source))
	}

	switch c.Geo.Backend {
	case BackendSQLite, BackendMongo:
	case BackendPostGIS:
		if strings.TrimSpace(c.Geo.PostgresDSN) == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required for the postgis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("GEO_BACKEND must be one of %q, %q, %q, got %q",
			BackendSQLite, BackendMongo, BackendPostGIS, c.Geo.Backend))
	}

	if c.Geo.NearestLimit <= 0 {
		errs = append(errs, fmt.Errorf("NEAREST_LIMIT must be positive, got %d", c.Geo.NearestLimit))
	}

	if strings.TrimSpace(c.Geo.LandmarkPattern) == "" {
		errs = append(errs, errors.New("LANDMARK_PATTERN is empty"))
	}

	return errors.Join(errs...)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}

	return level
}
