package fiberlog

import "github.com/sirupsen/logrus"

// Config - настройка журналирования запросов
type Config struct {
	// Logger - целевой логгер, по умолчанию logrus.StandardLogger
	Logger *logrus.Logger
	// Tags - поля, попадающие в каждую запись журнала
	Tags []string
}

var ConfigDefault = Config{
	Tags: []string{
		TagMethod,
		TagPath,
		TagStatus,
		TagLatency,
		RequestID,
	},
}
