package main

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zerologAdapter chuyển log nội bộ của asynq sang zerolog
type zerologAdapter struct {
	logger zerolog.Logger
}

var _ asynq.Logger = (*zerologAdapter)(nil)

func newAsynqLogger() *zerologAdapter {
	return &zerologAdapter{logger: log.With().Str("component", "asynq").Logger()}
}

func (a *zerologAdapter) Debug(args ...interface{}) { a.logger.Debug().Msg(fmt.Sprint(args...)) }
func (a *zerologAdapter) Info(args ...interface{})  { a.logger.Info().Msg(fmt.Sprint(args...)) }
func (a *zerologAdapter) Warn(args ...interface{})  { a.logger.Warn().Msg(fmt.Sprint(args...)) }
func (a *zerologAdapter) Error(args ...interface{}) { a.logger.Error().Msg(fmt.Sprint(args...)) }
func (a *zerologAdapter) Fatal(args ...interface{}) { a.logger.Fatal().Msg(fmt.Sprint(args...)) }
