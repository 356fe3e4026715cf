package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-research/internal/types"
	"github.com/rxtech-lab/argo-research/pkg/errors"
)

// AllLogLevels lists the accepted values of log_level.
var AllLogLevels = []any{"debug", "info", "warn", "error"}

type BacktestEngineV1Config struct {
	Symbol       string                     `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Instrument to evaluate. Optional when the data holds a single symbol"`
	StartTime    optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time of the evaluated window"`
	EndTime      optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time of the evaluated window"`
	Parallel     bool                       `yaml:"parallel" json:"parallel" jsonschema:"title=Parallel,description=Evaluate strategies concurrently"`
	Strategies   []types.StrategyConfig     `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,description=Strategies to compare, in report order" validate:"dive"`
	LogLevel     string                     `yaml:"log_level" json:"log_level" jsonschema:"title=Log Level,description=Minimum level of emitted logs" validate:"omitempty,oneof=debug info warn error"`
	StrictWarmup bool                       `yaml:"strict_warmup" json:"strict_warmup" jsonschema:"title=Strict Warm-up,description=Fail instead of reporting when no strategy can leave its warm-up"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		Symbol       string                 `yaml:"symbol"`
		StartTime    *time.Time             `yaml:"start_time"`
		EndTime      *time.Time             `yaml:"end_time"`
		Parallel     bool                   `yaml:"parallel"`
		Strategies   []types.StrategyConfig `yaml:"strategies"`
		LogLevel     string                 `yaml:"log_level"`
		StrictWarmup bool                   `yaml:"strict_warmup"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.Symbol = config.Symbol
	c.Parallel = config.Parallel
	c.Strategies = config.Strategies
	c.LogLevel = config.LogLevel
	c.StrictWarmup = config.StrictWarmup
	c.StartTime = optional.None[time.Time]()
	c.EndTime = optional.None[time.Time]()

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// Validate checks field constraints and that the window is not inverted.
func (c *BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "end_time %s is before start_time %s",
			c.EndTime.Unwrap().Format(time.RFC3339), c.StartTime.Unwrap().Format(time.RFC3339))
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.HasSuffix(t.String(), "types.StrategyType") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: types.AllStrategyTypes,
				}
			}

			return nil
		},
	}

	// Generate schema from BacktestEngineV1Config struct
	schema := reflector.Reflect(c)

	if property, ok := schema.Properties.Get("log_level"); ok {
		property.Enum = AllLogLevels
	}

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// TestConfig returns a config comparing the given strategies over [startTime, endTime].
func TestConfig(startTime time.Time, endTime time.Time, strategies ...types.StrategyConfig) BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Symbol:     "",
		StartTime:  optional.Some(startTime),
		EndTime:    optional.Some(endTime),
		Parallel:   false,
		Strategies: strategies,
		LogLevel:   "info",
	}
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Symbol:     "",
		StartTime:  optional.None[time.Time](),
		EndTime:    optional.None[time.Time](),
		Parallel:   false,
		Strategies: nil,
		LogLevel:   "info",
	}
}
