/*
 * Copyright 2024 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Command hopperfilter runs the host bridge server, or evaluates labels
// offline with the eval command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/catalog"
	"github.com/rulego/hopperfilter/components/filter"
	"github.com/rulego/hopperfilter/config"
	"github.com/rulego/hopperfilter/endpoint"
	mqttEndpoint "github.com/rulego/hopperfilter/endpoint/mqtt"
	"github.com/rulego/hopperfilter/utils/mqtt"
)

const version = "1.0.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "hopperfilter",
		Usage:   "filter hopper item flow by label",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "INI config file", EnvVars: []string{"HOPPERFILTER_CONFIG"}},
			&cli.StringFlag{Name: "catalog", Usage: "attribute catalog YAML, overrides catalog_file"},
			&cli.StringFlag{Name: "server", Usage: "listen address, overrides server"},
			&cli.BoolFlag{Name: "debug", Usage: "log every session step"},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:      "eval",
				Usage:     "evaluate a label against item types",
				ArgsUsage: "ITEM...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "label", Aliases: []string{"l"}, Required: true},
				},
				Action: eval,
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, error) {
	conf, err := config.Load(c.String("config"))
	if err != nil {
		return conf, err
	}
	if c.IsSet("catalog") {
		conf.CatalogFile = c.String("catalog")
	}
	if c.IsSet("server") {
		conf.Server = c.String("server")
	}
	if c.Bool("debug") {
		conf.Debug = true
	}
	return conf, nil
}

func loadCatalog(file string) (*catalog.Catalog, error) {
	if file == "" {
		return catalog.Default()
	}
	return catalog.Load(file)
}

func initLogger(conf config.Config) (*logrus.Logger, error) {
	logger := types.DefaultLogger()
	if conf.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if conf.LogFile != "" {
		f, err := os.OpenFile(conf.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", conf.LogFile)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

func serve(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := initLogger(conf)
	if err != nil {
		return err
	}
	provider, err := loadCatalog(conf.CatalogFile)
	if err != nil {
		return err
	}

	opts := append(conf.Options(), types.WithLogger(logger))
	if conf.Mqtt.Enabled {
		ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
		client, err := mqtt.NewClient(ctx, conf.MqttConfig())
		cancel()
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, types.WithLabelObserver(mqttEndpoint.NewPublisher(client, conf.Mqtt.Topic, logger)))
		logger.Infof("publishing labels to %s", conf.Mqtt.Server)
	}

	server := endpoint.New(endpoint.Config{
		Server:      conf.Server,
		CertFile:    conf.CertFile,
		CertKeyFile: conf.CertKeyFile,
	}, provider, types.NewConfig(opts...))
	if err := server.Start(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		return err
	}
	logger.Info("stopped server")
	return nil
}

func eval(c *cli.Context) error {
	conf, err := loadConfig(c)
	if err != nil {
		return err
	}
	provider, err := loadCatalog(conf.CatalogFile)
	if err != nil {
		return err
	}
	expr := filter.Parse(c.String("label"))
	fmt.Fprintf(c.App.Writer, "label %q\n", expr.String())
	for _, id := range c.Args().Slice() {
		verdict := "deny"
		if expr.Evaluate(provider, types.ItemStack{Type: id, Amount: 1}) {
			verdict = "allow"
		}
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", verdict, id)
	}
	return nil
}
