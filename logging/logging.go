package logging

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. format is "json" or "text";
// an unknown level falls back to info.
func Setup(level, format string) {
	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime: "@timestamp",
				log.FieldKeyMsg:  "message",
			},
		})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("log_level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
