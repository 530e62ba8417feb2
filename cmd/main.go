package main

import (
	"os"

	"cbrrates/internal/app"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.Execute(); err != nil {
		logrus.WithError(err).Error("cbrrates failed")
		os.Exit(1)
	}
}
