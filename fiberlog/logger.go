package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// New - middleware журналирования запросов api через logrus
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) != 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	return func(c *fiber.Ctx) error {
		d := data{pid: pid, start: time.Now()}
		err := c.Next()
		d.end = time.Now()
		// preflight-запросы не журналируются
		if c.Method() == fiber.MethodOptions {
			return err
		}
		fields := make(log.Fields, len(cfg.Tags))
		for _, tag := range cfg.Tags {
			ft, exist := tagFuncs[tag]
			if !exist {
				continue
			}
			value := ft(c, &d)
			if strValue, ok := value.(string); ok && strValue == "" {
				continue
			}
			fields[tag] = value
		}
		logger := log.StandardLogger()
		if cfg.Logger != nil {
			logger = cfg.Logger
		}
		entry := logger.WithFields(fields)
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn("запрос api")
		} else {
			entry.Info("запрос api")
		}
		return err
	}
}
