package cmd

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/rediscache"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects gorm to PostgreSQL with constraint violations
// translated into gorm errors.
func OpenDatabase(config Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(config.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// OpenInfrastructure connects to PostgreSQL, Kafka and Redis. The returned
// close function releases whatever was opened, also on partial failure.
func OpenInfrastructure(ctx context.Context, config Config) (Infrastructure, func() error, error) {
	var (
		infra   Infrastructure
		closers []func() error
	)
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	db, err := OpenDatabase(config)
	if err != nil {
		return Infrastructure{}, closeAll, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Infrastructure{}, closeAll, err
	}
	closers = append(closers, sqlDB.Close)
	infra.DB = db

	producer, err := kafka.NewSyncProducer(config.KafkaBrokers, config.KafkaClientID)
	if err != nil {
		return Infrastructure{}, closeAll, err
	}
	closers = append(closers, producer.Close)
	infra.Producer = producer

	client, err := rediscache.NewClient(ctx, config.RedisAddr, config.RedisDB)
	if err != nil {
		return Infrastructure{}, closeAll, err
	}
	closers = append(closers, client.Close)
	infra.Redis = client

	return infra, closeAll, nil
}
