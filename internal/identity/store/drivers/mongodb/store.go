package mongodb

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/aussiebroadwan/usermgmt/internal/identity/store"
)

const (
	DriverName = "mongodb"

	accountsCollection = "users"
	profilesCollection = "profiles"

	indexAccountsEmail    = "users_email_unique"
	indexAccountsUsername = "users_username_unique"
	indexProfilesUserID   = "profiles_user_id_unique"
)

type Config struct {
	URI      string
	Database string

	// TLS forces TLS on the connection. mongodb+srv URIs enable it anyway.
	TLS                         bool
	TLSCAFile                   string
	TLSAllowInvalidCertificates bool

	ConnectTimeout time.Duration
	// Timeout bounds every operation issued through the client.
	Timeout time.Duration
}

type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	database string
}

var _ store.Store = (*Store)(nil)

// NewStore connects and pings the primary. The caller owns Close.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, oops.Code("MONGO_CONFIG_INVALID").Errorf("mongodb: uri is required")
	}
	if cfg.Database == "" {
		return nil, oops.Code("MONGO_CONFIG_INVALID").Errorf("mongodb: database is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}
	if cfg.TLS {
		tlsCfg, err := tlsConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, oops.Code("MONGO_CONNECT_FAILED").Wrap(mapUnavailable(err))
	}

	s := &Store{
		client:   client,
		db:       client.Database(cfg.Database),
		database: cfg.Database,
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, oops.Code("MONGO_CONNECT_FAILED").With("database", cfg.Database).Wrap(err)
	}
	return s, nil
}

func tlsConfig(cfg Config) (*tls.Config, error) {
	tlsCfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.TLSAllowInvalidCertificates, // #nosec G402 - opt-in for self-signed dev clusters
	}
	if cfg.TLSCAFile == "" {
		return tlsCfg, nil
	}

	pem, err := os.ReadFile(cfg.TLSCAFile)
	if err != nil {
		return nil, oops.Code("MONGO_CONFIG_INVALID").With("ca_file", cfg.TLSCAFile).Wrap(err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, oops.Code("MONGO_CONFIG_INVALID").With("ca_file", cfg.TLSCAFile).
			Errorf("mongodb: no certificates found in CA file")
	}
	tlsCfg.RootCAs = pool
	return tlsCfg, nil
}

func (s *Store) Name() string     { return DriverName }
func (s *Store) Database() string { return s.database }

func (s *Store) Ping(ctx context.Context) error {
	return mapUnavailable(s.client.Ping(ctx, readpref.Primary()))
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Accounts() store.Accounts {
	return &accountsRepo{coll: s.db.Collection(accountsCollection)}
}

func (s *Store) Profiles() store.Profiles {
	return &profilesRepo{coll: s.db.Collection(profilesCollection)}
}

// mapUnavailable tags network failures and timeouts so callers can report the
// store as down rather than as an internal error.
func mapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}
