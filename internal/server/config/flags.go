package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userfed/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   full PostgreSQL DSN (overrides the discrete fields)
//	-g string   database host
//	-r string   database port
//	-n string   database name
//	-u string   database user
//	-p string   database password
//	-l string   sslmode
//	-i string   provider id
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-m          run embedded migrations at startup
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-d", "-g", "-r", "-n", "-u", "-p", "-l", "-i", "-s", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "full database DSN")
	fs.StringVar(&config.DBHost, "g", config.DBHost, "database host")
	fs.StringVar(&config.DBPort, "r", config.DBPort, "database port")
	fs.StringVar(&config.DBName, "n", config.DBName, "database name")
	fs.StringVar(&config.DBUser, "u", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "p", config.DBPassword, "database password")
	fs.StringVar(&config.DBSSLMode, "l", config.DBSSLMode, "database sslmode")
	fs.StringVar(&config.ProviderID, "i", config.ProviderID, "provider id used in composite identity ids")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run embedded migrations at startup")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
