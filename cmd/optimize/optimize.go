package optimize

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/shopspring/decimal"

	"github.com/zarlabs/zardian/cmd/env"
	"github.com/zarlabs/zardian/optimizer"
	"github.com/zarlabs/zardian/provider"
	"github.com/zarlabs/zardian/provider/binance"
	"github.com/zarlabs/zardian/provider/bybit"
	"github.com/zarlabs/zardian/provider/luno"
	"github.com/zarlabs/zardian/provider/static"
	"github.com/zarlabs/zardian/quote"
)

// optimizeCfg wraps the optimize configuration
type optimizeCfg struct {
	amount    string
	exchanges string
	timeout   time.Duration
	static    bool
	verbose   bool
}

// NewOptimizeCmd creates the optimize subcommand, a one-shot
// conversion-path lookup that prints the ranked paths and exits
func NewOptimizeCmd() *ffcli.Command {
	cfg := &optimizeCfg{}

	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "optimize",
		ShortUsage: "optimize -amount <ZAR> [flags]",
		LongHelp:   "Finds the cheapest ZAR -> USDC conversion path and prints the ranking",
		FlagSet:    fs,
		Exec:       cfg.exec,
		Options: []ff.Option{
			// Allow using ENV variables
			ff.WithEnvVars(),
			ff.WithEnvVarPrefix(env.Prefix),
		},
	}
}

func (c *optimizeCfg) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(
		&c.amount,
		"amount",
		"",
		"the ZAR amount to convert (decimal)",
	)

	fs.StringVar(
		&c.exchanges,
		"exchanges",
		"",
		"comma-separated exchange subset to query (default: all)",
	)

	fs.DurationVar(
		&c.timeout,
		"quote-timeout",
		optimizer.DefaultTimeout,
		"the deadline for the exchange quote fan-out",
	)

	fs.BoolVar(
		&c.static,
		"static",
		false,
		"use fixed reference quotes instead of live exchange APIs",
	)

	fs.BoolVar(
		&c.verbose,
		"verbose",
		false,
		"log provider activity to stderr",
	)
}

func (c *optimizeCfg) exec(ctx context.Context, _ []string) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(c.amount))
	if err != nil {
		return fmt.Errorf("invalid -amount %q: %w", c.amount, err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	opt := optimizer.New(
		optimizer.WithLogger(logger),
		optimizer.WithTimeout(c.timeout),
	)

	for _, p := range c.providers() {
		if err = opt.Register(p); err != nil {
			return fmt.Errorf("unable to register provider: %w", err)
		}
	}

	result, err := opt.FindOptimalPath(ctx, amount, c.exchangeSubset()...)
	if err != nil {
		// A full fan-out failure still carries the per-exchange reasons
		var noQuotes *optimizer.NoQuotesError

		if errors.As(err, &noQuotes) {
			printFailures(os.Stderr, noQuotes.Failures)
		}

		return err
	}

	printResult(os.Stdout, result)

	return nil
}

// providers returns the configured provider set
func (c *optimizeCfg) providers() []provider.Provider {
	if c.static {
		return static.DefaultProviders()
	}

	return []provider.Provider{
		binance.NewProvider(binance.TickerURL, c.timeout),
		luno.NewProvider(luno.TickerURL, luno.FeesURL, c.timeout),
		bybit.NewProvider(bybit.TickerURL, c.timeout),
	}
}

// exchangeSubset parses the -exchanges flag
func (c *optimizeCfg) exchangeSubset() []quote.Exchange {
	var subset []quote.Exchange

	for _, part := range strings.Split(c.exchanges, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}

		subset = append(subset, quote.Exchange(name))
	}

	return subset
}

func printResult(w io.Writer, result *optimizer.ConversionResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "RANK\tEXCHANGE\tRATE\tFEES (ZAR)\tNET USDC\t")

	paths := append(
		[]*optimizer.ConversionPath{result.Optimal},
		result.Alternatives...,
	)

	for i, path := range paths {
		marker := ""
		if path.Unprofitable {
			marker = " (unprofitable)"
		}

		_, _ = fmt.Fprintf(
			tw,
			"%d\t%s\t%s\t%s\t%s%s\t\n",
			i+1,
			path.Exchange,
			path.Rate.String(),
			path.TotalFeeZAR.StringFixed(2),
			path.NetUSDC.StringFixed(6),
			marker,
		)
	}

	_ = tw.Flush()

	printFailures(w, result.Failures)
}

func printFailures(w io.Writer, failures optimizer.FailureMap) {
	for exchange, reason := range failures {
		_, _ = fmt.Fprintf(
			w,
			"skipped %s: %s (%s)\n",
			exchange,
			reason.Message,
			reason.Kind,
		)
	}
}
