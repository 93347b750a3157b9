// Command probset maintains scalable Bloom filter sets in a local snapshot
// store.
//
//	probset [--db path] [--backend bolt|badger] [--log-level L] <command>
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/fatih/color"
	"github.com/urfave/cli"
)

const (
	defaultDB       = "probset.db"
	defaultLogLevel = "INFO"
	serviceName     = "probset"
)

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = serviceName
	app.Usage = "scalable Bloom filter sets"
	app.Writer = stdout
	app.ErrWriter = stdout
	app.Metadata = map[string]interface{}{"stdin": stdin}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "db, d",
			Usage: "snapshot database path (a directory for badger)",
			Value: defaultDB,
		},
		cli.StringFlag{
			Name:  "backend, b",
			Usage: "snapshot backend: bolt or badger",
			Value: backendBolt,
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (DEBUG, INFO, NOOP, ...)",
			Value: defaultLogLevel,
		},
	}

	started := false
	app.Before = func(c *cli.Context) error {
		logger.New(c.GlobalString("log-level"))
		started = true
		return nil
	}
	app.After = func(c *cli.Context) error {
		if started {
			logger.OnExit()
		}
		return nil
	}

	setFlag := cli.StringFlag{Name: "set, s", Usage: "set id"}
	app.Commands = []cli.Command{
		{
			Name:  "new",
			Usage: "Create an empty set and print its id",
			Flags: []cli.Flag{
				cli.Float64Flag{Name: "fpp, p", Usage: "target false positive probability", Value: 0.01},
				cli.IntFlag{Name: "exp, e", Usage: "initial capacity exponent", Value: defaultExponent},
				cli.StringFlag{Name: "alg, a", Usage: "digest algorithm", Value: defaultAlgorithm},
			},
			Action: newSet,
		},
		{
			Name:      "add",
			Usage:     "Add words, or stdin lines when none are given",
			ArgsUsage: "[words...]",
			Flags:     []cli.Flag{setFlag},
			Action:    addWords,
		},
		{
			Name:      "test",
			Aliases:   []string{"t"},
			Usage:     "Report maybe or no for each word",
			ArgsUsage: "[words...]",
			Flags:     []cli.Flag{setFlag},
			Action:    testWords,
		},
		{
			Name:   "stats",
			Usage:  "Show set statistics",
			Flags:  []cli.Flag{setFlag},
			Action: showStats,
		},
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "List stored set ids",
			Action:  listSets,
		},
	}
	return app
}

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("probset: %v", err))
		os.Exit(1)
	}
}
