// Package config loads rewrite settings: the target dialect and the filter
// conditions attached to every generated unique index.
package config

import (
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-uidx/pkg/dialect"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

// DefaultCondition is the soft-delete column used when nothing is configured.
const DefaultCondition = "is_deleted"

// Config holds rewrite settings.
type Config struct {
	Dialect    string
	Conditions *types.ConditionMap
}

// fileConfig is the on-disk shape. Conditions stay a node so that key order
// and scalar tags are preserved.
type fileConfig struct {
	Dialect    string    `yaml:"dialect"`
	Conditions yaml.Node `yaml:"conditions"`
}

// DefaultConfig returns the PostgreSQL dialect with "is_deleted = false".
func DefaultConfig() *Config {
	return &Config{
		Dialect:    dialect.PostgresName,
		Conditions: types.NewConditionMap().Set(DefaultCondition, types.Boolean(false)),
	}
}

// LoadFromFile loads configuration from a YAML (or JSON) file. Settings the
// file omits keep their defaults; an explicit empty conditions mapping
// disables the WHERE clause.
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", filename)
	}
	slog.Debug("Loaded config", "dialect", cfg.Dialect, "conditions", cfg.Conditions.Len())
	return cfg, nil
}

// Parse decodes configuration from YAML data.
func Parse(data []byte) (*Config, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if raw.Dialect != "" {
		cfg.Dialect = raw.Dialect
	}
	if raw.Conditions.Kind != 0 {
		conditions, err := DecodeConditions(&raw.Conditions)
		if err != nil {
			return nil, err
		}
		cfg.Conditions = conditions
	}
	return cfg, cfg.Validate()
}

// Validate checks that the dialect is registered.
func (c *Config) Validate() error {
	_, err := dialect.Get(c.Dialect)
	return err
}

// DecodeConditions converts a YAML mapping into a ConditionMap. Scalars are
// typed from their YAML tag; a nested {type, value} mapping names the kind
// explicitly, e.g. {type: decimal, value: "1.50"}.
func DecodeConditions(node *yaml.Node) (*types.ConditionMap, error) {
	conditions := types.NewConditionMap()
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return conditions, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, types.InvalidArgument("line %d: conditions must be a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "" {
			return nil, types.InvalidArgument("line %d: empty condition column", key.Line)
		}
		if _, dup := conditions.Get(key.Value); dup {
			return nil, types.InvalidArgument("line %d: duplicate condition %q", key.Line, key.Value)
		}
		v, err := decodeValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "condition %s", key.Value)
		}
		conditions.Set(key.Value, v)
	}
	return conditions, nil
}

func decodeValue(node *yaml.Node) (types.Value, error) {
	switch node.Kind {
	case yaml.MappingNode:
		var typed struct {
			Type  string `yaml:"type"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&typed); err != nil {
			return types.Value{}, err
		}
		kind, err := types.ParseKind(typed.Type)
		if err != nil {
			return types.Value{}, err
		}
		return types.ParseTyped(kind, typed.Value)
	case yaml.ScalarNode:
	default:
		return types.Value{}, types.InvalidArgument("line %d: condition value must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		return types.Null(), nil
	case "!!bool":
		return types.ParseTyped(types.KindBoolean, node.Value)
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return types.Value{}, types.InvalidArgument("line %d: invalid integer %q", node.Line, node.Value)
		}
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return types.Integer(int32(i)), nil
		}
		return types.Long(i), nil
	case "!!float":
		return types.ParseTyped(types.KindDouble, node.Value)
	default:
		return types.String(node.Value), nil
	}
}
