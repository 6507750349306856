package config

import (
	"fmt"
	"github.com/creasty/defaults"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lippserd/mgnrega-api/pkg/pool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"net"
	"strconv"
)

// Database defines database client configuration.
// Credentials have no defaults and must be configured explicitly.
type Database struct {
	Host            string `yaml:"host" default:"localhost"`
	Port            int    `yaml:"port" default:"3306"`
	Database        string `yaml:"database"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Driver          string `yaml:"driver" default:"mysql"`
	ConnectionLimit int    `yaml:"connection_limit" default:"10"`
}

// Open prepares the DSN string for the configured driver and
// returns a connection pool bounded to ConnectionLimit.
func (d *Database) Open(logger *zap.SugaredLogger) (*pool.Pool, error) {
	dsn, err := d.dsn()
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(d.Driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "can't open database")
	}

	logger.Infow("Opened database",
		zap.String("driver", d.Driver),
		zap.String("address", d.addr()),
		zap.String("database", d.Database),
		zap.Int("connection_limit", d.ConnectionLimit))

	return pool.New(db, d.ConnectionLimit), nil
}

// Validate checks that the configuration is complete.
func (d *Database) Validate() error {
	switch d.Driver {
	case "mysql", "pgx":
	case "":
		return errors.New("database driver is required")
	default:
		return errors.Errorf("unsupported database driver %q", d.Driver)
	}

	if d.Host == "" {
		return errors.New("database host is required")
	}
	if d.User == "" {
		return errors.New("database user is required")
	}
	if d.Password == "" {
		return errors.New("database password is required")
	}
	if d.Database == "" {
		return errors.New("database name is required")
	}
	if d.ConnectionLimit < 1 {
		return errors.Errorf("database connection limit must be at least 1, got %d", d.ConnectionLimit)
	}

	return nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
// Keys missing from the document keep their defaults.
func (d *Database) UnmarshalYAML(node *yaml.Node) error {
	if err := defaults.Set(d); err != nil {
		return errors.Wrap(err, "can't set database defaults")
	}

	type plain Database
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}

	if d.Driver == "" {
		return errors.Errorf("line %d: database driver must not be empty", node.Line)
	}

	return nil
}

func (d *Database) addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

func (d *Database) dsn() (string, error) {
	switch d.Driver {
	case "mysql":
		c := mysql.NewConfig()
		c.User = d.User
		c.Passwd = d.Password
		c.Net = "tcp"
		c.Addr = d.addr()
		c.DBName = d.Database

		return c.FormatDSN(), nil
	case "pgx":
		return fmt.Sprintf(
			"user=%s password=%s host=%s port=%d database=%s",
			d.User, d.Password, d.Host, d.Port, d.Database), nil
	default:
		return "", errors.Errorf("unsupported database driver %q", d.Driver)
	}
}
