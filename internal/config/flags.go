package config

import (
	"errors"
	"flag"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-password session password
//	-candidates comma-separated discovery candidates host:port,host:port
//	-request-timeout request timeout (e.g., "15s")
//	-poll-timeout long-poll timeout (e.g., "90s")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var password string
	var candidates string
	var requestTimeout time.Duration
	var pollTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Capture server address host:port")
	flag.StringVar(&password, "password", "", "Session password")
	flag.StringVar(&candidates, "candidates", "", "Discovery candidates host:port,host:port")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	flag.DurationVar(&pollTimeout, "poll-timeout", 0, "Long-poll timeout (e.g., 90s)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	var candidateList []string
	if candidates != "" {
		candidateList = strings.Split(candidates, ",")
	}

	return &StructuredConfig{
		Server: Server{
			Host:     serverAddress.Host,
			Port:     serverAddress.Port,
			Password: password,
		},
		Adapter: Adapter{
			RequestTimeout: requestTimeout,
			PollTimeout:    pollTimeout,
		},
		Discovery: Discovery{
			Candidates: candidateList,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// Hosts may be IP addresses or mDNS/DNS names; only the port is validated.
func (a *NetAddress) Set(s string) error {
	host, portStr, ok := strings.Cut(s, ":")
	if !ok || host == "" {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	a.Host = host
	a.Port = port
	return nil
}
