package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/goswiss/internal/cli"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := goswiss(); err != nil {
		logrus.Fatal(err)
	}
}

func goswiss() error {
	root := cli.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
