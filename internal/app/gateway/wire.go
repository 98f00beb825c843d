package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	gomysql "github.com/go-sql-driver/mysql"

	httpgateway "github.com/call-audit-gateway/internal/adapters/http/gateway"
	fileregistry "github.com/call-audit-gateway/internal/adapters/registry/file"
	memoryregistry "github.com/call-audit-gateway/internal/adapters/registry/memory"
	mysqlregistry "github.com/call-audit-gateway/internal/adapters/registry/mysql"
	memorystore "github.com/call-audit-gateway/internal/adapters/storage/memory"
	s3store "github.com/call-audit-gateway/internal/adapters/storage/s3"
	"github.com/call-audit-gateway/internal/core/services"
)

// ObjectStore is the full store capability the gateway needs: grants for the
// broker, fetches for the resolver, listing for the sweeper.
type ObjectStore interface {
	services.WriteGrantIssuer
	services.ObjectFetcher
	services.ObjectLister
}

type App struct {
	Handler  http.Handler
	Broker   *services.UploadBrokerService
	Meetings *services.MeetingService
	Resolver *services.ReportResolverService
	Poller   *services.ReportPoller
	Sweeper  *services.OrphanSweeper
	Registry services.MeetingRepository
	Store    ObjectStore
}

type WireOptions struct {
	Clock    services.Clock
	Registry services.MeetingRepository
	Store    ObjectStore
}

func Wire(ctx context.Context, cfg Config, opts *WireOptions) (*App, error) {
	var clock services.Clock
	var registry services.MeetingRepository
	var store ObjectStore

	if opts != nil && opts.Clock != nil {
		clock = opts.Clock
	} else {
		clock = services.RealClock{}
	}

	if opts != nil && opts.Registry != nil {
		registry = opts.Registry
	} else {
		var err error
		registry, err = newRegistry(cfg)
		if err != nil {
			return nil, err
		}
	}

	if opts != nil && opts.Store != nil {
		store = opts.Store
	} else if cfg.AWSRegion != "" {
		s3Store, err := s3store.NewStore(ctx, s3store.Config{
			Region:    cfg.AWSRegion,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
		if err != nil {
			return nil, err
		}
		store = s3Store
	} else {
		store = memorystore.NewObjectStore()
	}

	broker := services.NewUploadBrokerService(store, clock, services.UploadBrokerConfig{
		Bucket:   cfg.UploadBucket,
		GrantTTL: cfg.GrantTTL,
	})
	meetings := services.NewMeetingService(registry, clock)
	resolver := services.NewReportResolverService(registry, store, services.ReportResolverConfig{
		Bucket: cfg.ReportBucket,
	})
	poller := services.NewReportPoller(resolver, services.ReportPollerConfig{
		Interval: cfg.PollInterval,
	})
	sweeper := services.NewOrphanSweeper(registry, store, services.OrphanSweeperConfig{
		Bucket: cfg.UploadBucket,
	})

	return &App{
		Handler:  httpgateway.NewRouter(broker, meetings, resolver),
		Broker:   broker,
		Meetings: meetings,
		Resolver: resolver,
		Poller:   poller,
		Sweeper:  sweeper,
		Registry: registry,
		Store:    store,
	}, nil
}

func newRegistry(cfg Config) (services.MeetingRepository, error) {
	switch cfg.RegistryBackend {
	case "memory":
		return memoryregistry.NewMeetingRepository(), nil
	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, &services.ConfigurationError{Key: "MYSQL_DSN"}
		}
		dsn, err := normalizeMySQLDSN(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening mysql registry: %w", err)
		}
		return mysqlregistry.NewMeetingRepository(db), nil
	default:
		return fileregistry.NewMeetingRepository(cfg.RegistryPath), nil
	}
}

// normalizeMySQLDSN forces parseTime so DATETIME columns scan into time.Time;
// without it the driver hands back []uint8 and every registry lookup fails.
func normalizeMySQLDSN(dsn string) (string, error) {
	parsed, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parsing mysql dsn: %w", err)
	}
	parsed.ParseTime = true
	return parsed.FormatDSN(), nil
}
