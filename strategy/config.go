package strategy

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"battleship/density"
	"battleship/meta"
	"battleship/placement"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

var (
	// DefaultConfig is used when an empty configuration string is given.
	DefaultConfig = "density"

	kindNames = map[string]Kind{
		"random":      RandomKind,
		"hunt":        HuntTargetKind,
		"hunttarget":  HuntTargetKind,
		"density":     DensityKind,
		"probability": DensityKind,
		"montecarlo":  MonteCarloKind,
	}
)

// Config selects a strategy and its tuning parameters.
type Config struct {
	Kind   Kind
	Params map[string]string
}

func (c Config) String() string {
	if len(c.Params) == 0 {
		return c.Kind.String()
	}
	parts := make([]string, 0, len(c.Params))
	for _, key := range slices.Sorted(maps.Keys(c.Params)) {
		if v := c.Params[key]; v != "" {
			parts = append(parts, key+"="+v)
		} else {
			parts = append(parts, key)
		}
	}
	return c.Kind.String() + ":" + strings.Join(parts, ",")
}

// ParseConfig reads a strategy name followed by an optional colon and a
// comma-separated list of key=value parameters, e.g.
// "density:weight=length,hit_boost=4" or "montecarlo:samples=500".
func ParseConfig(config string) (Config, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		config = DefaultConfig
	}

	name, rest, _ := strings.Cut(config, ":")
	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, errors.Wrapf(ErrUnknownStrategy, "%q", name)
	}
	return Config{Kind: kind, Params: splitConfigString(rest)}, nil
}

// splitConfigString maps keys to values, all strings. A key without a value
// maps to "".
func splitConfigString(config string) map[string]string {
	params := make(map[string]string)
	if strings.TrimSpace(config) == "" {
		return params
	}
	for _, part := range strings.Split(config, ",") {
		key, value, _ := strings.Cut(part, "=")
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// popParamOr parses and removes a parameter, returning defaultValue when the
// key is absent or empty.
func popParamOr[T interface{ int | float64 | string }](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	delete(params, key)
	if !exists || value == "" {
		return defaultValue, nil
	}

	var t T
	switch any(defaultValue).(type) {
	case int:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		return any(parsed).(T), nil
	case float64:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return t, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return any(parsed).(T), nil
	default:
		return any(value).(T), nil
	}
}

// New builds the configured strategy. rng is owned by the caller's game and
// is shared by the strategy's random choices.
func New(config Config, rng *rand.Rand) (Strategy, error) {
	params := maps.Clone(config.Params)
	if params == nil {
		params = map[string]string{}
	}

	var s Strategy
	switch config.Kind {
	case RandomKind:
		s = NewRandom(rng)
	case HuntTargetKind:
		s = NewHuntTarget(rng)
	case DensityKind, MonteCarloKind:
		options, err := estimatorOptions(config.Kind, params, rng)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to create %s strategy", config.Kind)
		}
		s = NewDensity(density.NewEstimator(options...))
	default:
		return nil, errors.Wrapf(ErrUnknownStrategy, "kind %d", int(config.Kind))
	}

	if len(params) > 0 {
		return nil, errors.Errorf("unknown parameters %v for %s strategy", slices.Sorted(maps.Keys(params)), config.Kind)
	}
	return s, nil
}

// NewFromString parses config and builds the strategy.
func NewFromString(config string, rng *rand.Rand) (Strategy, error) {
	c, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}
	return New(c, rng)
}

func estimatorOptions(kind Kind, params map[string]string, rng *rand.Rand) ([]density.Option, error) {
	hitBoost, err := popParamOr(params, "hit_boost", meta.HIT_BOOST)
	if err != nil {
		return nil, err
	}
	bonus, err := popParamOr(params, "adjacency_bonus", meta.ADJACENCY_BONUS)
	if err != nil {
		return nil, err
	}
	weight, err := popParamOr(params, "weight", "uniform")
	if err != nil {
		return nil, err
	}

	options := []density.Option{
		density.WithHitBoost(hitBoost),
		density.WithAdjacencyBonus(bonus),
	}
	switch weight {
	case "uniform":
		options = append(options, density.WithWeight(density.Uniform))
	case "length":
		options = append(options, density.WithWeight(density.ByLength))
	default:
		return nil, errors.Errorf("unknown weight %q, expected uniform or length", weight)
	}

	if kind == MonteCarloKind {
		samples, err := popParamOr(params, "samples", meta.SAMPLES)
		if err != nil {
			return nil, err
		}
		if samples <= 0 {
			return nil, errors.Errorf("samples must be positive, got %d", samples)
		}
		options = append(options, density.WithSource(placement.NewSampler(rng, samples)))
	}
	return options, nil
}
