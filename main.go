package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.WithError(err).Error("scene-eval failed")
		os.Exit(1)
	}
}
