package config

import (
	"github.com/jessevdk/go-flags"
	"os"
)

// Flags defines the command line flags. Each flag can also be set via its environment variable.
// Flags that are set take precedence over the config file.
type Flags struct {
	Config string `short:"c" long:"config" env:"MGNREGA_CONFIG" description:"path to config file"`

	DBHost            string `long:"db-host" env:"DB_HOST" description:"database host"`
	DBPort            int    `long:"db-port" env:"DB_PORT" description:"database port"`
	DBUser            string `long:"db-user" env:"DB_USER" description:"database user"`
	DBPassword        string `long:"db-password" env:"DB_PASSWORD" description:"database password"`
	DBName            string `long:"db-name" env:"DB_NAME" description:"database name"`
	DBDriver          string `long:"db-driver" env:"DB_DRIVER" description:"database driver (mysql or pgx)"`
	DBConnectionLimit int    `long:"db-connection-limit" env:"DB_CONNECTION_LIMIT" description:"maximum number of database connections"`

	Port     int    `short:"p" long:"port" env:"PORT" description:"HTTP listen port"`
	LogLevel string `long:"log-level" env:"LOG_LEVEL" description:"log level"`
}

// ParseFlags parses the command line flags and the environment.
func ParseFlags() (*Flags, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	parser := flags.NewParser(f, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	return f, nil
}

// Apply overrides the values of c with all flags that are set.
func (f *Flags) Apply(c *Config) {
	if f.DBHost != "" {
		c.Database.Host = f.DBHost
	}
	if f.DBPort != 0 {
		c.Database.Port = f.DBPort
	}
	if f.DBUser != "" {
		c.Database.User = f.DBUser
	}
	if f.DBPassword != "" {
		c.Database.Password = f.DBPassword
	}
	if f.DBName != "" {
		c.Database.Database = f.DBName
	}
	if f.DBDriver != "" {
		c.Database.Driver = f.DBDriver
	}
	if f.DBConnectionLimit != 0 {
		c.Database.ConnectionLimit = f.DBConnectionLimit
	}
	if f.Port != 0 {
		c.HTTP.Port = f.Port
	}
	if f.LogLevel != "" {
		c.Logging.Level = f.LogLevel
	}
}
