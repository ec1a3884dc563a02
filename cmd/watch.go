package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rm-hull/render-postfx/internal"
)

func Watch(inputDir, outputDir, settingsFile, format string, workers int, interval time.Duration) error {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars()

	fx, err := loadSettings(settingsFile)
	if err != nil {
		return err
	}

	sched, err := internal.NewScheduler(internal.WatchOptions{
		InputDir:  inputDir,
		OutputDir: outputDir,
		PoolSize:  poolSize(workers),
		Format:    format,
		Interval:  interval,
	}, fx)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down watcher")
	return sched.Shutdown()
}
