// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and an
// optional JSON config file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/jessevdk/go-flags"
)

// Side-store backends accepted by --store.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Options holds the configuration values for the application.
type Options struct {
	// Address is the HTTP server listening address (ip:port).
	Address string `short:"a" long:"address" env:"SERVER_ADDRESS" default:"localhost:8080" description:"run on ip:port" json:"address"`

	// Store selects the side-store backend.
	Store string `short:"s" long:"store" env:"ACCOUNTS_STORE" default:"file" choice:"memory" choice:"file" choice:"postgres" choice:"redis" description:"side-store backend" json:"store"`

	// StorageURL is the directory or afs URL used by the file backend.
	StorageURL string `long:"storage-url" env:"STORAGE_URL" default:"data" description:"base location for the file backend" json:"storage_url"`

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string `short:"d" long:"database-dsn" env:"DATABASE_DSN" description:"postgres DSN" json:"database_dsn"`

	RedisAddr     string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"redis address" json:"redis_addr"`
	RedisPassword string `long:"redis-password" env:"REDIS_PASSWORD" description:"redis password" json:"redis_password"`
	RedisDB       int    `long:"redis-db" env:"REDIS_DB" default:"0" description:"redis database number" json:"redis_db"`

	// Key is the side-store key holding the account list.
	Key string `short:"k" long:"key" env:"ACCOUNTS_KEY" default:"accounts" description:"side-store key" json:"key"`

	LogLevel string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level" json:"log_level"`

	// Config is the path to the JSON config file. A missing file is ignored.
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.json" description:"path to config file" json:"-"`

	// Version asks the binary to print build information and exit.
	Version bool `short:"v" long:"version" description:"show build version and date" json:"-"`
}

// Parse reads args (without the program name), the environment and the config
// file. Command-line flags win over environment variables, which win over the
// config file, which wins over defaults.
func Parse(args []string) (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := overlayFile(parser, opts); err != nil {
		return nil, err
	}

	switch opts.Store {
	case StoreMemory, StoreFile, StorePostgres, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown store %q", opts.Store)
	}
	return opts, nil
}

// overlayFile applies the config file to every option that was not given on
// the command line or through the environment.
func overlayFile(parser *flags.Parser, opts *Options) error {
	if opts.Config == "" {
		return nil
	}
	data, err := os.ReadFile(opts.Config)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	merged := *opts
	if err := json.Unmarshal(data, &merged); err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	src := reflect.ValueOf(opts).Elem()
	dst := reflect.ValueOf(&merged).Elem()
	for _, o := range allOptions(parser.Command.Group) {
		if explicit(o) {
			idx := o.Field().Index
			dst.FieldByIndex(idx).Set(src.FieldByIndex(idx))
		}
	}
	*opts = merged
	return nil
}

// allOptions collects the options of g and its subgroups. go-flags files the
// struct's fields under an "Application Options" child group.
func allOptions(g *flags.Group) []*flags.Option {
	opts := g.Options()
	for _, child := range g.Groups() {
		opts = append(opts, allOptions(child)...)
	}
	return opts
}

func explicit(o *flags.Option) bool {
	if o.IsSet() && !o.IsSetDefault() {
		return true
	}
	if o.EnvDefaultKey != "" {
		if _, ok := os.LookupEnv(o.EnvDefaultKey); ok {
			return true
		}
	}
	return false
}
