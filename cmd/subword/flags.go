package main

import "github.com/urfave/cli/v3"

var (
	modelPath    string
	strategyName string
	logLevel     string
	logFormat    string
	debug        bool
)

func modelFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:        "model",
		Aliases:     []string{"m"},
		Usage:       usage,
		Destination: &modelPath,
	}
}

func strategyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "strategy",
		Aliases:     []string{"s"},
		Usage:       "tokenization strategy (bpe, word)",
		Value:       "bpe",
		Destination: &strategyName,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
