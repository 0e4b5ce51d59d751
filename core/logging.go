// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"io"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
)

// EnvLogLevel selects the log level, "info" when unset.
const EnvLogLevel = "LOG_LEVEL"

// ConfigureLogging sets up the standard logger to write to out at the
// level named by LOG_LEVEL.
func ConfigureLogging(out io.Writer) error {
	level, err := log.ParseLevel(envy.Get(EnvLogLevel, "info"))
	if err != nil {
		return err
	}
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}
