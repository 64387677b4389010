// Package config parses slimrelay's CLI surface into a plain struct, the
// way gravwell's ingesters turn a parsed flag set into configuration
// before handing it to their constructors. Flags are defined with
// github.com/spf13/pflag rather than the standard library's flag package,
// matching the corpus's gwcli tooling.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Server is slimrelay's parsed configuration.
type Server struct {
	SysPaths       []string
	InetHost       string
	Port           int
	Verbose        bool
	Keepalive      bool
	RateLimit      int
	RateCooldown   time.Duration
	RateMaxSources int
}

// fileDefaults is the optional --config YAML file shape: every field is a
// default that flags (if explicitly set) override.
type fileDefaults struct {
	SysPaths       []string `yaml:"syspath"`
	InetHost       string   `yaml:"inethost"`
	Port           int      `yaml:"port"`
	Verbose        bool     `yaml:"verbose"`
	Keepalive      bool     `yaml:"keepalive"`
	RateLimit      int      `yaml:"rate_limit"`
	RateCooldown   int      `yaml:"rate_cooldown_seconds"`
	RateMaxSources int      `yaml:"rate_max_sources"`
}

// Parse builds a Server config from args (typically os.Args[1:]). A
// --config file, if given, supplies defaults that are overridden by any
// flag the caller explicitly set on the command line.
func Parse(args []string) (Server, error) {
	fs := pflag.NewFlagSet("slimrelay", pflag.ContinueOnError)

	sysPaths := fs.StringArray("syspath", nil, "directory scanned at startup for a fixture.yaml alias descriptor (repeatable)")
	inetHost := fs.String("inethost", "0.0.0.0", "address to bind the listener to")
	port := fs.Int("port", 8085, "TCP port to listen on")
	verbose := fs.Bool("verbose", false, "raise the log level to DEBUG")
	keepalive := fs.Bool("keepalive", false, "serve multiple sessions until interrupted")
	configPath := fs.String("config", "", "optional YAML file of defaults")
	rateLimit := fs.Int("rate-limit", 0, "max connections/second accepted from a single remote host (0 disables)")
	rateCooldown := fs.Int("rate-cooldown", 60, "seconds a source is refused after exceeding rate-limit")
	rateMaxSources := fs.Int("rate-max-sources", 10000, "max distinct remote hosts tracked by the rate limiter")

	if err := fs.Parse(args); err != nil {
		return Server{}, fmt.Errorf("config: parsing flags: %w", err)
	}

	cfg := Server{
		SysPaths:       *sysPaths,
		InetHost:       *inetHost,
		Port:           *port,
		Verbose:        *verbose,
		Keepalive:      *keepalive,
		RateLimit:      *rateLimit,
		RateCooldown:   time.Duration(*rateCooldown) * time.Second,
		RateMaxSources: *rateMaxSources,
	}

	if *configPath != "" {
		defaults, err := loadFile(*configPath)
		if err != nil {
			return Server{}, err
		}
		applyDefaults(&cfg, fs, defaults)
	}

	return cfg, nil
}

func loadFile(path string) (fileDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileDefaults{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var d fileDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return fileDefaults{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return d, nil
}

// applyDefaults fills in cfg fields from d wherever the corresponding flag
// was not explicitly set on the command line, so file defaults never
// clobber an explicit flag.
func applyDefaults(cfg *Server, fs *pflag.FlagSet, d fileDefaults) {
	if !fs.Changed("syspath") && len(d.SysPaths) > 0 {
		cfg.SysPaths = d.SysPaths
	}
	if !fs.Changed("inethost") && d.InetHost != "" {
		cfg.InetHost = d.InetHost
	}
	if !fs.Changed("port") && d.Port != 0 {
		cfg.Port = d.Port
	}
	if !fs.Changed("verbose") && d.Verbose {
		cfg.Verbose = d.Verbose
	}
	if !fs.Changed("keepalive") && d.Keepalive {
		cfg.Keepalive = d.Keepalive
	}
	if !fs.Changed("rate-limit") && d.RateLimit != 0 {
		cfg.RateLimit = d.RateLimit
	}
	if !fs.Changed("rate-cooldown") && d.RateCooldown != 0 {
		cfg.RateCooldown = time.Duration(d.RateCooldown) * time.Second
	}
	if !fs.Changed("rate-max-sources") && d.RateMaxSources != 0 {
		cfg.RateMaxSources = d.RateMaxSources
	}
}

// Addr returns the "host:port" listen address.
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.InetHost, s.Port)
}
