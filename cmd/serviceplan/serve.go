package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serviceplan/internal/db"
	"serviceplan/internal/plan"
	"serviceplan/internal/schedule"
	"serviceplan/internal/server"
	"serviceplan/internal/storage"
	"serviceplan/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	logger := newLogger(config)

	if config.S3BucketName == "" {
		return fmt.Errorf("set S3_BUCKET_NAME")
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	s3Client := storage.NewS3Client(awsConfig, config.S3BaseEndpoint)
	presigner := s3.NewPresignClient(s3Client)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	entryRepo := store.NewEntryRepository(pool)
	uploadRepo := store.NewUploadRepository(pool)
	rosterRepo := store.NewRosterRepository(pool)
	mediaRepo := store.NewMediaRepository(pool)

	mediaStore := storage.NewS3MediaStore(
		s3Client,
		presigner,
		mediaRepo,
		config.S3BucketName,
		config.S3KeyPrefix,
		time.Duration(config.PresignTTLMin)*time.Minute,
	)

	loc, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return err
	}

	planner := schedule.NewPlanner(entryRepo, loc, config.ServiceHour, time.Now)

	columns, err := plan.ParseListColumns(config.ListColumns)
	if err != nil {
		return err
	}

	controller := plan.NewController(entryRepo, uploadRepo, rosterRepo, mediaStore, planner, logger).
		WithListLayout(columns, config.LinkListRows)

	srv, err := server.New(config, logger, controller)
	if err != nil {
		return err
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":      config.ServerPort,
			"time_zone": config.TimeZone,
			"language":  config.Language,
		}).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
