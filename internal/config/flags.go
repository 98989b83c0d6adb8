package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the console flags from args (normally os.Args[1:]).
//
// Flags:
//
//	-a admin API base URL
//	-source data source: remote or synthetic
//	-timeout admin API request timeout (e.g. "5s"); 0 disables it
//	-u / -p admin username and password (basic auth)
//	-d journal DSN (SQLite path or postgres:// URL)
//	-s status server address in format [host]:[port]
//	-c/-config JSON or YAML file path with configs
//	-log-level, -log-file logging settings
//	-prefs UI preferences file
//	-page-size tokens page size
//	-tokens-interval, -history-interval poll intervals
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var adapterAddress, dataSource string
	var requestTimeout time.Duration
	var username, password string
	var journalDSN string
	var configPath string
	var logLevel, logFile string
	var prefsPath string
	var pageSize int
	var tokensInterval, historyInterval time.Duration

	fs.StringVar(&adapterAddress, "a", "", "Admin API base URL")
	fs.StringVar(&dataSource, "source", "", "Data source: remote or synthetic")
	fs.DurationVar(&requestTimeout, "timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&username, "u", "", "Admin username")
	fs.StringVar(&password, "p", "", "Admin password")
	fs.StringVar(&journalDSN, "d", "", "Journal DSN")
	fs.Var(&serverAddress, "s", "Status server address host:port")
	fs.StringVar(&configPath, "c", "", "Config file path (JSON or YAML)")
	fs.StringVar(&configPath, "config", "", "Config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&prefsPath, "prefs", "", "Preferences file path")
	fs.IntVar(&pageSize, "page-size", 0, "Tokens page size")
	fs.DurationVar(&tokensInterval, "tokens-interval", 0, "Tokens poll interval")
	fs.DurationVar(&historyInterval, "history-interval", 0, "History poll interval")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			AdminUsername: username,
			AdminPassword: password,
		},
		Adapter: Adapter{
			Address:        adapterAddress,
			RequestTimeout: requestTimeout,
			DataSource:     dataSource,
		},
		Engines: Engines{
			Tokens:  Engine{PageSize: pageSize, PollInterval: tokensInterval},
			History: Engine{PollInterval: historyInterval},
		},
		Storage:        Storage{JournalDSN: journalDSN},
		Server:         Server{Address: serverAddress.String()},
		Log:            Log{Level: logLevel, Path: logFile},
		PrefsPath:      prefsPath,
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format is invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
