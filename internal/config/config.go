// Package config reads the server's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/joho/godotenv"
)

// Source selects where the questionnaire snapshot comes from.
type Source string

const (
	SourceFile   Source = "file"
	SourceSQLite Source = "sqlite"
)

// validSources is the set of accepted INTERVIEW_SOURCE values.
var validSources = map[Source]bool{
	SourceFile:   true,
	SourceSQLite: true,
}

// Environment variable names.
const (
	EnvSchemaDir     = "INTERVIEW_SCHEMA_DIR"
	EnvQuestionnaire = "INTERVIEW_QUESTIONNAIRE"
	EnvMetadata      = "INTERVIEW_METADATA"
	EnvSource        = "INTERVIEW_SOURCE"
	EnvDataDir       = "INTERVIEW_DATA_DIR"
	EnvDefaultTier   = "INTERVIEW_DEFAULT_TIER"
	EnvSeed          = "INTERVIEW_SEED_STORE"
)

// DefaultEnvFile is read by Load when present.
const DefaultEnvFile = ".env"

// Config holds the server settings.
type Config struct {
	// SchemaDir holds the questionnaire and field-metadata files.
	SchemaDir         string
	QuestionnaireFile string
	MetadataFile      string

	Source      Source
	DataDir     string
	DefaultTier string

	// SeedStore imports SchemaDir into an empty sqlite store on startup.
	SeedStore bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		SchemaDir:         ".",
		QuestionnaireFile: schema.DefaultQuestionnaireFile,
		MetadataFile:      schema.DefaultMetadataFile,
		Source:            SourceFile,
		DataDir:           filepath.Join(home, ".hoofy-interview"),
		DefaultTier:       string(tier.Fallback),
		SeedStore:         true,
	}
}

// FromEnv overlays environment variables on DefaultConfig.
func FromEnv() Config {
	def := DefaultConfig()
	return Config{
		SchemaDir:         getEnv(EnvSchemaDir, def.SchemaDir),
		QuestionnaireFile: getEnv(EnvQuestionnaire, def.QuestionnaireFile),
		MetadataFile:      getEnv(EnvMetadata, def.MetadataFile),
		Source:            Source(getEnv(EnvSource, string(def.Source))),
		DataDir:           getEnv(EnvDataDir, def.DataDir),
		DefaultTier:       getEnv(EnvDefaultTier, def.DefaultTier),
		SeedStore:         getEnvAsBool(EnvSeed, def.SeedStore),
	}
}

// Load reads envFile (if it exists) into the process environment and then
// returns FromEnv. Variables already set in the environment win over the
// file. An empty envFile means DefaultEnvFile.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading %s: %w", envFile, err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if !validSources[c.Source] {
		return fmt.Errorf("config: invalid %s %q (want %q or %q)", EnvSource, c.Source, SourceFile, SourceSQLite)
	}
	if c.SchemaDir == "" {
		return fmt.Errorf("config: %s is empty", EnvSchemaDir)
	}
	if c.Source == SourceSQLite && c.DataDir == "" {
		return fmt.Errorf("config: %s is required for the sqlite source", EnvDataDir)
	}
	if !tier.IsKnown(c.DefaultTier) {
		return fmt.Errorf("config: unknown %s %q", EnvDefaultTier, c.DefaultTier)
	}
	return nil
}

// Tier returns the canonical default tier.
func (c Config) Tier() tier.Tier {
	return tier.Normalize(c.DefaultTier)
}

// FileLoader builds a schema loader for SchemaDir.
func (c Config) FileLoader() *schema.FileLoader {
	return schema.NewFileLoader(c.SchemaDir,
		schema.WithQuestionnaireFile(c.QuestionnaireFile),
		schema.WithMetadataFile(c.MetadataFile),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
