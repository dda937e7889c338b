// Copyright 2024 The gwbridge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command gwbridge bridges a local radio concentrator to one or more
// remote Semtech UDP packet-forwarder servers.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"log/syslog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	logrus_syslog "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/zmq"
	"github.com/brocaar/gwbridge/config"
	"github.com/brocaar/gwbridge/supervisor"
)

func main() {
	app := &cli.App{
		Name:  "gwbridge",
		Usage: "bridge a local radio concentrator to remote Semtech UDP packet-forwarder servers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to the configuration file", EnvVars: []string{"GWBRIDGE_CONFIG"}},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run the bridge",
				Action: runCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("gwbridge exited with error")
	}
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := configureLogging(cfg.General); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	sup := supervisor.New(cfg,
		func(ctx context.Context) (concentrator.EventReader, error) {
			return zmq.NewEventReader(ctx, cfg.Concentrator.EventURL)
		},
		func(ctx context.Context) (concentrator.CommandClient, error) {
			return zmq.NewCommandClient(ctx, cfg.Concentrator.CommandURL)
		},
	)

	if cfg.Metrics.Bind != "" {
		sup.Registry().MustRegister(prometheus.DefaultRegisterer)
		go serveMetrics(cfg.Metrics.Bind)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logrus.WithField("servers", len(cfg.Servers)).Info("starting gwbridge")
	return sup.Run(ctx)
}

func loadConfig(path string) (config.Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gwbridge")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/gwbridge")
	}
	v.SetEnvPrefix("gwbridge")
	v.AutomaticEnv()

	var cfg config.Config
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func configureLogging(gen config.General) error {
	level, err := logrus.ParseLevel(gen.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if gen.Syslog {
		hook, err := logrus_syslog.NewSyslogHook("", "", syslog.LOG_INFO, "gwbridge")
		if err != nil {
			return err
		}
		logrus.AddHook(hook)
	}
	return nil
}

func serveMetrics(bind string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(bind, mux); err != nil {
		logrus.WithError(err).Error("metrics server stopped")
	}
}
