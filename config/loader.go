package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rickchristie/reagent"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read when Options.EnvFile is empty. It may be missing.
const DefaultEnvFile = ".env"

// Options selects the configuration sources and command line overrides.
// Zero values mean "not set".
type Options struct {
	// ConfigFile is an optional YAML file. It must exist when set.
	ConfigFile string

	// EnvFile is a dotenv file. It must exist when set; when empty DefaultEnvFile is read if
	// present.
	EnvFile string

	Model         string
	MaxIterations int
	LogLevel      string
	Verbose       bool
}

// Load builds the configuration from defaults, the YAML file, the .env file, the environment
// and opts, then validates it. All failures are *reagent.ConfigurationError.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := cfg.readFile(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	dotenv, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
	cfg.OpenAIKey = lookup(EnvOpenAIKey)
	cfg.SerpAPIKey = lookup(EnvSerpAPIKey)
	cfg.GitHubToken = lookup(EnvGitHubToken)

	if opts.Model != "" {
		cfg.Model.Name = opts.Model
	}
	if opts.MaxIterations != 0 {
		cfg.Agent.MaxIterations = opts.MaxIterations
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Verbose {
		cfg.Logging.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile validates the YAML document against the file schema and decodes it over cfg.
func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &reagent.ConfigurationError{Key: "config", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &reagent.ConfigurationError{Key: "config", Err: fmt.Errorf("%s: %w", path, err)}
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return &reagent.ConfigurationError{Key: "config", Err: fmt.Errorf("%s: %w", path, err)}
	}
	if err := fileSchema.ValidateJSON(bytes.NewReader(docJSON)); err != nil {
		return &reagent.ConfigurationError{Key: "config", Err: fmt.Errorf("%s: %w", path, err)}
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return &reagent.ConfigurationError{Key: "config", Err: fmt.Errorf("%s: %w", path, err)}
	}
	return nil
}

func readEnvFile(path string) (gotenv.Env, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	env, err := gotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return gotenv.Env{}, nil
		}
		return nil, &reagent.ConfigurationError{Key: "env_file", Err: err}
	}
	return env, nil
}
