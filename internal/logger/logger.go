// Package logger initializes the process wide logrus logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Conf holds the logging configuration.
type Conf struct {
	// Dir is a directory to write the internal log file to. Empty disables
	// file logging.
	Dir string `yaml:"dir"`
	// StdErr additionally logs to stderr.
	StdErr bool `yaml:"stderr"`
	// Level sets the verbosity, e.g. DEBUG or INFO.
	Level string `yaml:"level"`
}

const logFileName = "backoffice.log"

// Init configures logrus from the passed Conf. Unknown levels fall back to
// INFO.
func Init(conf Conf) {
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)
	level, err := log.ParseLevel(conf.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	var writers []io.Writer
	if conf.Dir != "" {
		f, err := os.OpenFile(
			filepath.Join(conf.Dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644,
		)
		if err != nil {
			log.WithError(err).Error("could not open log file, logging to stderr only")
		} else {
			writers = append(writers, f)
		}
	}
	if conf.StdErr || len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}
	log.SetOutput(io.MultiWriter(writers...))
}
