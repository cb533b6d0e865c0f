package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	return NewWithFile("")
}

// NewWithFile creates a configuration instance reading an explicit config file.
// An empty path falls back to the standard search locations
func NewWithFile(path string) (*Config, error) {
	// A missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/spam-bench/")
		v.AddConfigPath("$HOME/.spam-bench")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("SPAM_BENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Input data
	v.SetDefault("data.path", "data/spam.csv")
	v.SetDefault("data.delimiter", ",")
	v.SetDefault("data.encoding", "utf-8")
	v.SetDefault("data.index_column", "auto")
	v.SetDefault("data.label_column", "v1")
	v.SetDefault("data.text_column", "v2")
	v.SetDefault("data.drop_columns", []string{"Unnamed: 2", "Unnamed: 3", "Unnamed: 4"})
	v.SetDefault("data.ham_label", "ham")
	v.SetDefault("data.spam_label", "spam")
	v.SetDefault("data.max_text_length", 0)

	// Text normalization
	v.SetDefault("text.language", "en")
	v.SetDefault("text.stemmer", "porter")
	v.SetDefault("text.lemmatize", false)
	v.SetDefault("text.stopwords_file", "")
	v.SetDefault("text.extra_stopwords", []string{})

	// Train/test split
	v.SetDefault("split.test_size", 0.2)
	v.SetDefault("split.seed", 42)
	v.SetDefault("split.stratify", false)

	// Feature extraction
	v.SetDefault("vectorizer.min_df", 5)
	v.SetDefault("vectorizer.ngram_min", 1)
	v.SetDefault("vectorizer.ngram_max", 2)

	// Minority oversampling
	v.SetDefault("smote.enabled", true)
	v.SetDefault("smote.k_neighbors", 5)
	v.SetDefault("smote.seed", 42)

	// Classifier roster
	v.SetDefault("models.enabled", DefaultModels)
	v.SetDefault("models.seed", 42)
	v.SetDefault("models.logistic_regression.c", 1.0)
	v.SetDefault("models.logistic_regression.max_iter", 300)
	v.SetDefault("models.logistic_regression.learning_rate", 1.0)
	v.SetDefault("models.logistic_regression.tol", 1e-4)
	v.SetDefault("models.multinomial_nb.alpha", 1.0)
	v.SetDefault("models.random_forest.n_estimators", 50)
	v.SetDefault("models.random_forest.max_depth", 0)
	v.SetDefault("models.random_forest.min_samples_split", 2)
	v.SetDefault("models.gradient_boosting.n_estimators", 150)
	v.SetDefault("models.gradient_boosting.learning_rate", 0.1)
	v.SetDefault("models.gradient_boosting.max_depth", 6)
	v.SetDefault("models.gradient_boosting.min_samples_split", 100)
	v.SetDefault("models.gradient_boosting.random_state", 100)
	v.SetDefault("models.linear_svc.c", 1.0)
	v.SetDefault("models.linear_svc.max_iter", 1000)
	v.SetDefault("models.linear_svc.tol", 1e-4)
	v.SetDefault("models.sgd.alpha", 1e-4)
	v.SetDefault("models.sgd.max_iter", 1000)
	v.SetDefault("models.sgd.tol", 1e-3)

	// Output
	v.SetDefault("report.format", "table")
	v.SetDefault("report.detailed", false)

	// Run history
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.sqlite_path", "/data/spam_bench.db")
	v.SetDefault("store.mysql_dsn", "user:password@tcp(localhost:3306)/spam_bench?parseTime=true")
	v.SetDefault("store.postgres_dsn", "host=localhost port=5432 user=bench dbname=spam_bench sslmode=disable")
	v.SetDefault("store.timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// Set overrides a single key, used for command line flags
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
