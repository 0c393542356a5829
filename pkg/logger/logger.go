package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Init(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func Info(msg string, fields ...map[string]interface{}) {
	withFields(log.Info(), fields).Msg(msg)
}

func Debug(msg string, fields ...map[string]interface{}) {
	withFields(log.Debug(), fields).Msg(msg)
}

func Warn(msg string, fields ...map[string]interface{}) {
	withFields(log.Warn(), fields).Msg(msg)
}

func Error(msg string, err error, fields ...map[string]interface{}) {
	withFields(log.Error().Err(err), fields).Msg(msg)
}

func Fatal(msg string, err error) {
	log.Fatal().Err(err).Msg(msg)
}

func withFields(e *zerolog.Event, fields []map[string]interface{}) *zerolog.Event {
	for _, f := range fields {
		e = e.Fields(f)
	}
	return e
}
