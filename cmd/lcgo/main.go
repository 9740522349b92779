// Command lcgo runs the batch light-curve ML pipeline from a YAML
// configuration file.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/skyseries/lcgo/pipeline"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

func main() {
	confPath := flag.String("conf", "conf/pipeline.yaml", "path to the pipeline configuration file")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	lclog.SetupLogger(*logLevel)

	conf, err := pipeline.LoadFile(*confPath)
	if err != nil {
		slog.Error("invalid pipeline configuration", lclog.ErrAttr(err))
		os.Exit(1)
	}

	p, err := pipeline.New(conf)
	if err != nil {
		slog.Error("pipeline setup failed", lclog.ErrAttr(err))
		os.Exit(1)
	}
	defer func() { _ = p.Close() }()

	if err := p.Run(); err != nil {
		slog.Error("pipeline run failed", lclog.ErrAttr(err))
		os.Exit(1)
	}
}
