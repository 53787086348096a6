package infra

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/ledger/internal/config"
	"github.com/umalmyha/ledger/internal/repository"
	"github.com/umalmyha/ledger/pkg/db/transactor"
)

// Storage is a customer repository with its connection cleanup
type Storage struct {
	Customers repository.CustomerRepository
	close     func(context.Context) error
}

func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// CustomerStorage connects backend selected in configuration
func CustomerStorage(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*Storage, error) {
	storageCfg := cfg.StorageCfg

	ctx, cancel := context.WithTimeout(ctx, storageCfg.ConnectTimeout)
	defer cancel()

	switch storageCfg.Backend {
	case config.BackendPostgres:
		pool, err := Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return nil, err
		}

		trx := transactor.NewPgxTransactor(pool)
		if err := repository.EnsurePostgresSchema(ctx, trx); err != nil {
			pool.Close()
			return nil, err
		}

		return &Storage{
			Customers: repository.NewPostgresCustomerRepository(trx),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	case config.BackendMongo:
		client, err := Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, err
		}

		return &Storage{
			Customers: repository.NewMongoCustomerRepository(client, cfg.MongoCfg.Database),
			close:     client.Disconnect,
		}, nil
	}

	codec, err := repository.CodecByName(storageCfg.Codec)
	if err != nil {
		return nil, err
	}

	opts := []repository.SlotOption{
		repository.WithCodec(codec),
		repository.WithLatency(storageCfg.ListLatency, storageCfg.MutationLatency),
		repository.WithLogger(logger),
	}

	switch storageCfg.Backend {
	case config.BackendMemory:
		slot := repository.NewMemorySlot(storageCfg.Slot)
		return &Storage{Customers: repository.NewSlotCustomerRepository(slot, opts...)}, nil
	case config.BackendFile:
		slot := repository.NewFileSlot(storageCfg.Dir, storageCfg.Slot)
		return &Storage{Customers: repository.NewSlotCustomerRepository(slot, opts...)}, nil
	case config.BackendRedis:
		client, err := Redis(ctx, cfg.RedisCfg)
		if err != nil {
			return nil, err
		}

		slot := repository.NewRedisSlot(client, storageCfg.Slot)
		return &Storage{
			Customers: repository.NewSlotCustomerRepository(slot, opts...),
			close: func(context.Context) error {
				return client.Close()
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", storageCfg.Backend)
	}
}
