package cliparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultPort         = 3318
	DefaultDatabaseType = "sqlite"
	DefaultEnvFile      = ".env"
)

var (
	ErrNoDatabase     = errors.New("database URL required (use -d, DATABASE_URL or a credentials file)")
	ErrBadCredentials = errors.New("credentials file must hold a header and one row: host,port,dbname,user,password")
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	CredentialsFile string
	EnvFile         string
	Verbose         bool
}

// Credentials is the single row of a database access CSV.
type Credentials struct {
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL or DSN")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (mysql, postgres or sqlite)")
	fs.StringVarP(&cfg.CredentialsFile, "credentials", "c", "", "CSV file with host,port,dbname,user,password")
	fs.StringVar(&cfg.EnvFile, "env-file", DefaultEnvFile, "Environment file loaded before reading env variables")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Log every statement")
}

// ParseFlags parses args and resolves the remaining settings.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("coastcamdb", pflag.ContinueOnError)
	BindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(cfg)
}

// Resolve fills unset fields from the environment, the env file, the
// credentials file and the defaults, in that order.
func Resolve(cfg Config) (Config, error) {
	if cfg.EnvFile != "" {
		// A missing env file is fine; variables may come from the shell.
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = os.Getenv("COASTCAM_CREDENTIALS")
	}
	if cfg.DatabaseURL == "" && cfg.CredentialsFile != "" {
		creds, err := LoadCredentials(cfg.CredentialsFile)
		if err != nil {
			return Config{}, err
		}
		dsn, err := creds.DSN(cfg.DatabaseType)
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseURL = dsn
	}
	if cfg.DatabaseURL == "" {
		return Config{}, ErrNoDatabase
	}

	return cfg, nil
}

// LoadCredentials reads the data row of a credentials CSV.
func LoadCredentials(path string) (Credentials, error) {
	f, err := os.Open(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to open credentials: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}
	if len(records) < 2 || len(records[1]) < 5 {
		return Credentials{}, ErrBadCredentials
	}

	row := records[1]
	port, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: port %q", ErrBadCredentials, row[1])
	}
	return Credentials{
		Host:     strings.TrimSpace(row[0]),
		Port:     port,
		DBName:   strings.TrimSpace(row[2]),
		User:     strings.TrimSpace(row[3]),
		Password: row[4],
	}, nil
}

// DSN formats the credentials for the driver of dbType.
func (c Credentials) DSN(dbType string) (string, error) {
	addr := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	switch strings.ToLower(dbType) {
	case "mysql", "mariadb":
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = c.DBName
		return mc.FormatDSN(), nil
	case "postgres", "postgresql", "pg":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.User, c.Password),
			Host:   addr,
			Path:   "/" + c.DBName,
		}
		return u.String(), nil
	}
	return "", fmt.Errorf("credentials file needs a server database, not %q", dbType)
}
