package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/agent"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/logging"
	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/utils"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", utils.GetValueFromEnvironmentVariable("SMARTDESK_CONFIG", "smartdesk.yaml"), "path to the agent configuration file")
	flag.Parse()

	conf, err := utils.LoadConfiguration(*configPath)
	if err != nil {
		logging.NewLogrus("info", os.Stderr).Get("main").WithError(err).Fatal("Invalid configuration")
	}

	logs := logging.NewLogrus(conf.LogLevel, os.Stdout)
	log := logs.Get("main")

	smartDesk, err := agent.Build(conf, logs)
	if err != nil {
		log.WithError(err).Fatal("Cannot start agent")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return smartDesk.Run(gctx)
	})
	if conf.MetricsListen != "" {
		log.WithField("addr", conf.MetricsListen).Info("Serving metrics")
		g.Go(func() error {
			return smartDesk.Metrics().Serve(gctx, conf.MetricsListen)
		})
	}

	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("Agent stopped with error")
	}
}
