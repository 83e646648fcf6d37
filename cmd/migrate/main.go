package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"seotda-server/internal/config"
	"seotda-server/pkg/db"
)

func main() {
	waitForDB()

	if err := db.Migrate(); err != nil {
		logrus.WithError(err).Fatal("could not migrate the database")
	}

	logrus.Info("migrations complete")
}

func waitForDB() {
	cfg := config.Instance().Database
	timeout := time.NewTimer(time.Second * 10)
	defer timeout.Stop()

	for {
		err := db.Load(cfg.Driver, cfg.DSN)
		if err == nil {
			return
		}

		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}
