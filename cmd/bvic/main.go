// Command bvic evaluates a single bit-vector interval-set transfer
// function from the command line, for inspecting or scripting the
// engine without writing Go.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/config"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/intervalops"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/version"
)

var (
	fOp        string
	fWidth     int
	fConfigDir string
	fVerbose   bool
	fVersion   bool
)

func init() {
	flag.StringVar(&fOp, "op", "", "operation to evaluate (add, sub, neg, umul, udiv, sext, zext, trunc, concat, not, and, or, xor, andreduce, orreduce, xorreduce, eq, ne, ult, ugt, slt, sgt, gate, onehot-lsb, onehot-msb)")
	flag.IntVar(&fWidth, "width", 0, "result width, required by sext, zext and trunc; umul defaults to the sum of its operand widths")
	flag.StringVar(&fConfigDir, "config-dir", ".", "directory to start the bvic.conf search from")
	flag.BoolVar(&fVerbose, "v", false, "enable verbose logging, or (with -version) print build/module info")
	flag.BoolVar(&fVersion, "version", false, "print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -op OP [-width N] SET [SET ...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  each SET is WIDTH:LO-HI[,LO-HI...], e.g. 8:0-3,10-10\n")
		flag.PrintDefaults()
	}
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("bvic: constructing logger: %v", err)
		}
		return l
	}
	return zap.NewNop()
}

// parseSet parses a WIDTH:LO-HI[,LO-HI...] interval-set literal.
func parseSet(spec string) (intervalset.IntervalSet, error) {
	widthStr, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return intervalset.IntervalSet{}, fmt.Errorf("malformed interval set %q: missing width prefix", spec)
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return intervalset.IntervalSet{}, fmt.Errorf("malformed width in %q: %w", spec, err)
	}
	bld := intervalset.NewBuilder(width)
	for _, part := range strings.Split(rest, ",") {
		loStr, hiStr, ok := strings.Cut(part, "-")
		if !ok {
			return intervalset.IntervalSet{}, fmt.Errorf("malformed interval %q in %q: expected LO-HI", part, spec)
		}
		lo, err := strconv.ParseUint(loStr, 10, 64)
		if err != nil {
			return intervalset.IntervalSet{}, fmt.Errorf("malformed low bound in %q: %w", part, err)
		}
		hi, err := strconv.ParseUint(hiStr, 10, 64)
		if err != nil {
			return intervalset.IntervalSet{}, fmt.Errorf("malformed high bound in %q: %w", part, err)
		}
		bld.Add(interval.New(bits.FromUint64(width, lo), bits.FromUint64(width, hi)))
	}
	return bld.Build(), nil
}

// engineFromConfig builds an intervalops.Engine from a loaded
// config.Config, so every budget a bvic.conf file declares actually
// bounds the harness and ternary bridge the CLI drives, rather than
// only being decoded and logged.
func engineFromConfig(cfg config.Config) intervalops.Engine {
	return intervalops.NewEngine(intervalops.Limits{
		OperandMinimizeCap:     cfg.Engine.OperandMinimizeCap,
		OperandMinimizeTailCap: cfg.Engine.OperandMinimizeTailCap,
		ResultMinimizeCap:      cfg.Engine.MinimizeTarget,
	}, cfg.Engine.DefaultFromTernaryBudget)
}

func evaluate(op string, width int, cfg config.Config, sets []intervalset.IntervalSet) (intervalset.IntervalSet, error) {
	one := func(i int) intervalset.IntervalSet { return sets[i] }
	requireCount := func(n int) error {
		if len(sets) != n {
			return fmt.Errorf("%s requires %d operand(s), got %d", op, n, len(sets))
		}
		return nil
	}
	eng := engineFromConfig(cfg)
	switch op {
	case "add":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Add(one(0), one(1)), nil
	case "sub":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Sub(one(0), one(1)), nil
	case "neg":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Neg(one(0)), nil
	case "umul":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		if width == 0 {
			width = one(0).Width() + one(1).Width()
		}
		return eng.UMul(one(0), one(1), width), nil
	case "udiv":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.UDiv(one(0), one(1)), nil
	case "sext":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.SignExtend(one(0), width), nil
	case "zext":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.ZeroExtend(one(0), width), nil
	case "trunc":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.Truncate(one(0), width), nil
	case "concat":
		if len(sets) == 0 {
			return intervalset.IntervalSet{}, fmt.Errorf("concat requires at least 1 operand")
		}
		return eng.Concat(sets), nil
	case "not":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Not(one(0)), nil
	case "and":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.And(one(0), one(1)), nil
	case "or":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Or(one(0), one(1)), nil
	case "xor":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.Xor(one(0), one(1)), nil
	case "andreduce":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.AndReduce(one(0)), nil
	case "orreduce":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.OrReduce(one(0)), nil
	case "xorreduce":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.XorReduce(one(0)), nil
	case "eq":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.Eq(one(0), one(1)), nil
	case "ne":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.Ne(one(0), one(1)), nil
	case "ult":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.ULt(one(0), one(1)), nil
	case "ugt":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.UGt(one(0), one(1)), nil
	case "slt":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.SLt(one(0), one(1)), nil
	case "sgt":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return eng.SGt(one(0), one(1)), nil
	case "gate":
		if err := requireCount(2); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.Gate(one(0), one(1)), nil
	case "onehot-lsb":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.OneHot(one(0), intervalops.Lsb, cfg.Engine.OneHotBudget), nil
	case "onehot-msb":
		if err := requireCount(1); err != nil {
			return intervalset.IntervalSet{}, err
		}
		return intervalops.OneHot(one(0), intervalops.Msb, cfg.Engine.OneHotBudget), nil
	default:
		return intervalset.IntervalSet{}, fmt.Errorf("unknown operation %q", op)
	}
}

func run() error {
	flag.Parse()

	if fVersion {
		if fVerbose {
			version.Verbose()
		} else {
			version.Print()
		}
		return nil
	}
	if fOp == "" {
		flag.Usage()
		return fmt.Errorf("bvic: -op is required")
	}

	logger := newLogger(fVerbose)
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load(fConfigDir, version.EngineVersion())
	if err != nil {
		return fmt.Errorf("bvic: loading config: %w", err)
	}
	logger.Debug("loaded config",
		zap.Int("default_from_ternary_budget", cfg.Engine.DefaultFromTernaryBudget),
		zap.Int("one_hot_budget", cfg.Engine.OneHotBudget),
		zap.Int("minimize_target", cfg.Engine.MinimizeTarget),
		zap.Int("operand_minimize_cap", cfg.Engine.OperandMinimizeCap),
		zap.Int("operand_minimize_tail_cap", cfg.Engine.OperandMinimizeTailCap),
	)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("bvic: at least one operand is required")
	}
	sets := make([]intervalset.IntervalSet, len(args))
	for i, arg := range args {
		s, err := parseSet(arg)
		if err != nil {
			return fmt.Errorf("bvic: %w", err)
		}
		sets[i] = s
	}

	result, err := evaluate(fOp, fWidth, cfg, sets)
	if err != nil {
		return fmt.Errorf("bvic: %w", err)
	}
	fmt.Println(result)
	return nil
}

func main() {
	log.SetFlags(0)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
