package main

import (
	"flag"
	"os"

	"github.com/markormesher/filecheck/internal/entrypoints"
	"github.com/markormesher/filecheck/internal/logging"
	"github.com/markormesher/filecheck/internal/schema"
)

var l = logging.Logger

func main() {
	configFilePath := flag.String("config", "", "Path to configuration file")
	listExtensions := flag.Bool("list-extensions", false, "Print the supported extensions and exit")
	flag.Parse()

	// special case: registry inspection
	if *listExtensions {
		entrypoints.ListExtensions()
		return
	}

	// normal case: user invocation
	var conf *schema.FilecheckConfig

	if *configFilePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			l.Error("Error getting working directory", "error", err)
			os.Exit(1)
		}

		if discovered, ok := schema.DiscoverConfigFile(cwd); ok {
			*configFilePath = discovered
		}
	}

	if *configFilePath != "" {
		var err error
		conf, err = schema.LoadFilecheckConfig(*configFilePath)
		if err != nil {
			l.Error("Error loading configuration", "error", err)
			os.Exit(1)
		}
	} else {
		conf = &schema.FilecheckConfig{}
	}

	// trailing arguments are extra filenames to check, with no config file required
	if args := flag.Args(); len(args) > 0 {
		conf.Sources = append(conf.Sources, schema.SourceConfig{
			Type:      schema.SourceTypeStatic,
			Filenames: args,
		})
	}

	if len(conf.Sources) == 0 {
		l.Error("No config file found and no filenames provided")
		err := conf.CleanupStorage()
		if err != nil {
			l.Error("Error cleaning up storage", "error", err)
		}
		os.Exit(1)
	}

	report := entrypoints.Run(conf)

	if conf.FailOnUnsupported && report.Unsupported > 0 {
		os.Exit(1)
	}
}
