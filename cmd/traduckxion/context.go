package main

import (
	"context"
	"strings"
	"sync"

	"github.com/traduckxion/transcribe/app"
	"github.com/traduckxion/transcribe/transcription"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *app.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*app.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = app.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) catalog() (*transcription.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Catalog()
}

// newApp builds the full application. Outside of serve, logs go to stderr
// so stdout carries only command output.
func (c *commandContext) newApp(ctx context.Context, serving bool) (*app.App, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !serving {
		cfg.Logging.Output = "stderr"
	}
	return app.New(ctx, cfg)
}
