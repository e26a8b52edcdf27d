package main

import (
	"log"

	"github.com/m3rciful/finbot/bot"
	"github.com/m3rciful/finbot/core/cmd"
	coreconfig "github.com/m3rciful/finbot/core/config"
	"github.com/m3rciful/finbot/core/logger"
	"github.com/m3rciful/finbot/finance"
)

type appConfig struct {
	core *coreconfig.Config
}

func (c *appConfig) CoreConfig() *coreconfig.Config { return c.core }

func main() {
	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			if err := logger.InitLogger(cfg); err != nil {
				return nil, err
			}
			return &appConfig{core: cfg}, nil
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			if err := finance.ValidateTaxonomy(); err != nil {
				return nil, err
			}
			return bot.New(carrier.CoreConfig()), nil
		},
	})
	if err != nil {
		log.Fatalf("finbot: %v", err)
	}
}
