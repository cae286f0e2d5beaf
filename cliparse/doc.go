// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Commands that own their flag set call BindFlags and then Resolve.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: mysql, postgres or sqlite (default: sqlite)
  - DatabaseURL: DSN handed to the driver
  - CredentialsFile: CSV with the database access parameters
  - EnvFile: file loaded with godotenv (default: .env)
  - Verbose: log every statement

# CLI Flags

	-p, --port           Server port
	-d, --database-url   Database URL
	-t, --database-type  Database type
	-c, --credentials    Credentials CSV
	    --env-file       Environment file
	-v, --verbose        Debug logging

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	COASTCAM_CREDENTIALS → -c

CLI flags take precedence over environment variables, and variables
already set in the shell take precedence over the env file.

# Credentials File

When no URL is given, the credentials CSV is read:

	host,port,dbname,user,password
	db.example.org,3306,coastcamdb,reader,secret

and turned into a MySQL DSN or a postgres:// URL depending on the
database type.
*/
package cliparse
