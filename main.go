package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/derivanim/api"
	"github.com/matt-g-everett/derivanim/scene"
	"github.com/matt-g-everett/derivanim/stream"
	"github.com/matt-g-everett/derivanim/util"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Control    *stream.Control
	Api        *api.Api
	logger     *slog.Logger
}

func newApp(cfg stream.Config, logger *slog.Logger) (*app, error) {
	a := new(app)
	a.Config = cfg
	a.logger = logger

	c, err := stream.NewController(cfg, scene.DefaultRegistry(), logger)
	if err != nil {
		return nil, err
	}
	a.Controller = c

	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID(cfg.Mqtt.ClientID).
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(cfg, a.Client, c, logger)
	a.Control = stream.NewControl(cfg, a.Client, c, logger)
	a.Api = api.NewApi(cfg.API.Addr, c, logger)
	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.logger.Info("Connected", "broker", a.Config.Mqtt.URL)
	if err := a.Control.Subscribe(); err != nil {
		a.logger.Error("control topic unavailable", "error", err)
	}
}

func (a *app) run(ctx context.Context) error {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer a.Client.Disconnect(250)

	go func() {
		if err := a.Api.Serve(ctx); err != nil {
			a.logger.Error("api stopped", "error", err)
		}
	}()
	return a.Streamer.Run(ctx)
}

func newLogger(cfg stream.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: util.ParseLevel(cfg.Log.Level)}
	if cfg.Log.JSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	cfg, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger := newLogger(cfg)
	logger.Debug("config loaded", "broker", cfg.Mqtt.URL, "scenes", cfg.Playback.Scenes)

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("stopped", "error", err)
		os.Exit(1)
	}
}
