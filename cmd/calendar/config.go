// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"

	"gonih.org/calendar"
)

// config is read from CALENDAR_* environment variables. Flags take
// precedence over it.
type config struct {
	Default   string `envconfig:"DEFAULT" default:"iso8601" validate:"calendar"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("calendar", func(fl validator.FieldLevel) bool {
		_, err := calendar.ByName(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}()

func loadConfigFromEnv() (*config, error) {
	var cfg config
	if err := envconfig.Process("calendar", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
