// Package config implements the cascading bvic.conf loader: budgets and
// version floors for the interval-set engine, read from the target
// directory and every parent directory above it, nearest directory
// winning.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"golang.org/x/xerrors"
)

type config struct {
	cfg  Config
	meta toml.MetaData
}

func (cfg config) Merge(ocfg config) config {
	if ocfg.meta.IsDefined("engine", "default_from_ternary_budget") {
		cfg.cfg.Engine.DefaultFromTernaryBudget = ocfg.cfg.Engine.DefaultFromTernaryBudget
	}
	if ocfg.meta.IsDefined("engine", "one_hot_budget") {
		cfg.cfg.Engine.OneHotBudget = ocfg.cfg.Engine.OneHotBudget
	}
	if ocfg.meta.IsDefined("engine", "minimize_target") {
		cfg.cfg.Engine.MinimizeTarget = ocfg.cfg.Engine.MinimizeTarget
	}
	if ocfg.meta.IsDefined("engine", "operand_minimize_cap") {
		cfg.cfg.Engine.OperandMinimizeCap = ocfg.cfg.Engine.OperandMinimizeCap
	}
	if ocfg.meta.IsDefined("engine", "operand_minimize_tail_cap") {
		cfg.cfg.Engine.OperandMinimizeTailCap = ocfg.cfg.Engine.OperandMinimizeTailCap
	}
	if ocfg.meta.IsDefined("engine", "min_engine_version") {
		cfg.cfg.Engine.MinEngineVersion = ocfg.cfg.Engine.MinEngineVersion
	}
	return cfg
}

// EngineConfig holds the budgets that bound the abstract-interpretation
// harness's search space, and the lowest engine version a config file
// is willing to run under.
type EngineConfig struct {
	DefaultFromTernaryBudget int    `toml:"default_from_ternary_budget"`
	OneHotBudget             int    `toml:"one_hot_budget"`
	MinimizeTarget           int    `toml:"minimize_target"`
	OperandMinimizeCap       int    `toml:"operand_minimize_cap"`
	OperandMinimizeTailCap   int    `toml:"operand_minimize_tail_cap"`
	MinEngineVersion         string `toml:"min_engine_version"`
}

type Config struct {
	Engine EngineConfig `toml:"engine"`
}

var defaultConfig = Config{
	Engine: EngineConfig{
		DefaultFromTernaryBudget: 16,
		OneHotBudget:             16,
		MinimizeTarget:           16,
		OperandMinimizeCap:       5,
		OperandMinimizeTailCap:   1,
		MinEngineVersion:         "v0.0.0",
	},
}

// Defaults returns the built-in budget configuration, for library
// callers that want the engine's default budgets without reading a
// bvic.conf file from disk.
func Defaults() Config {
	return defaultConfig
}

const configName = "bvic.conf"

func parseConfigs(dir string) ([]config, error) {
	var out []config

	for dir != "" {
		f, err := os.Open(filepath.Join(dir, configName))
		if os.IsNotExist(err) {
			ndir := filepath.Dir(dir)
			if ndir == dir {
				break
			}
			dir = ndir
			continue
		}
		if err != nil {
			return nil, xerrors.Errorf("config: opening %s: %w", filepath.Join(dir, configName), err)
		}
		var cfg Config
		meta, err := toml.DecodeReader(f, &cfg)
		f.Close()
		if err != nil {
			return nil, xerrors.Errorf("config: decoding %s: %w", filepath.Join(dir, configName), err)
		}
		out = append(out, config{cfg, meta})
		ndir := filepath.Dir(dir)
		if ndir == dir {
			break
		}
		dir = ndir
	}
	out = append(out, config{
		cfg:  defaultConfig,
		meta: toml.MetaData{}, // meta of the base config should never be accessed
	})
	if len(out) < 2 {
		return out, nil
	}
	for i := 0; i < len(out)/2; i++ {
		out[i], out[len(out)-1-i] = out[len(out)-1-i], out[i]
	}
	return out, nil
}

func mergeConfigs(confs []config) Config {
	if len(confs) == 0 {
		panic("config: trying to merge zero configs")
	}
	if len(confs) == 1 {
		return confs[0].cfg
	}
	conf := confs[0]
	for _, oconf := range confs[1:] {
		conf = conf.Merge(oconf)
	}
	return conf.cfg
}

// Load reads bvic.conf from dir and every parent directory above it,
// merging them with the directory closest to dir taking priority, and
// validates the resulting engine version floor against engineVersion.
func Load(dir string, engineVersion string) (Config, error) {
	confs, err := parseConfigs(dir)
	if err != nil {
		return Config{}, err
	}
	conf := mergeConfigs(confs)
	if err := checkVersionFloor(conf.Engine.MinEngineVersion, engineVersion); err != nil {
		return Config{}, err
	}
	if err := checkEngineBudgets(conf.Engine); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// checkEngineBudgets rejects a config whose budgets would panic deep
// inside intervalops rather than fail cleanly at the process boundary.
// MinimizeTarget, OperandMinimizeCap, and OperandMinimizeTailCap all
// flow into intervalops.Limits and from there into MinimizeIntervals,
// which panics on a non-positive budget; OneHotBudget and
// DefaultFromTernaryBudget are rejected too for consistency, even
// though FromTernary happens to tolerate zero.
func checkEngineBudgets(e EngineConfig) error {
	fields := []struct {
		name  string
		value int
	}{
		{"default_from_ternary_budget", e.DefaultFromTernaryBudget},
		{"one_hot_budget", e.OneHotBudget},
		{"minimize_target", e.MinimizeTarget},
		{"operand_minimize_cap", e.OperandMinimizeCap},
		{"operand_minimize_tail_cap", e.OperandMinimizeTailCap},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return xerrors.Errorf("config: %s must be positive, got %d", f.name, f.value)
		}
	}
	return nil
}

// checkVersionFloor reports an error if engineVersion is older than
// the floor a config file demands. Both must be valid semver strings
// (a bare "devel" engineVersion is always accepted, since unreleased
// builds carry no meaningful version to compare).
func checkVersionFloor(floor, engineVersion string) error {
	if floor == "" || engineVersion == "devel" {
		return nil
	}
	if !semver.IsValid(floor) {
		return xerrors.Errorf("config: min_engine_version %q is not valid semver", floor)
	}
	if !semver.IsValid(engineVersion) {
		return xerrors.Errorf("config: engine version %q is not valid semver", engineVersion)
	}
	if semver.Compare(engineVersion, floor) < 0 {
		return xerrors.Errorf("config: engine version %s is older than the required minimum %s", engineVersion, floor)
	}
	return nil
}
