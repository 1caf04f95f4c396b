// Package config resolves robot and API configuration for go-nao commands.
//
// Values come from, in order: an explicit command-line argument, the process
// environment, and a .env file found in the working directory or next to the
// executable. The .env contract matches the original NAO tooling:
//
//	NAO_IP_ADDRESS=192.168.1.100
//	NAO_PASSWORD=nao
//	OPENAI_API_KEY=sk-...
//	OPENAI_MODEL=gpt-4o-mini
package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// Default robot configuration.
const (
	// DefaultPort is the NAOqi service port on the robot.
	DefaultPort = 9559

	// DefaultSSHUser is the login on the robot's embedded Linux.
	DefaultSSHUser = "nao"

	// DefaultSSHPass is the factory password for the nao account.
	DefaultSSHPass = "nao"

	// DefaultChatModel is used when OPENAI_MODEL is not set.
	DefaultChatModel = "gpt-4o-mini"
)

// ErrNoRobotAddress is returned when no robot IP can be resolved.
var ErrNoRobotAddress = errors.New("config: no robot address (pass an IP argument or set NAO_IP_ADDRESS)")

// ErrNoAPIKey is returned when OPENAI_API_KEY is not set anywhere.
var ErrNoAPIKey = errors.New("config: OPENAI_API_KEY not set")

var envOnce sync.Once

// loadDotEnv merges .env files into the process environment without
// overriding variables that are already set. Looked up in the working
// directory first, then next to the executable.
func loadDotEnv() {
	envOnce.Do(func() {
		_ = godotenv.Load()
		if exe, err := os.Executable(); err == nil {
			_ = godotenv.Load(filepath.Join(filepath.Dir(exe), ".env"))
		}
	})
}

// RobotIP resolves the robot address. An explicit argument wins; otherwise
// NAO_IP_ADDRESS from the environment or .env file is used.
func RobotIP(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	loadDotEnv()
	if ip := os.Getenv("NAO_IP_ADDRESS"); ip != "" {
		return ip, nil
	}
	return "", ErrNoRobotAddress
}

// RobotIPOr resolves the robot address, falling back to def when neither an
// argument nor NAO_IP_ADDRESS is available.
func RobotIPOr(arg, def string) string {
	ip, err := RobotIP(arg)
	if err != nil {
		return def
	}
	return ip
}

// OpenAIKey returns the OpenAI API key from the environment or .env file.
func OpenAIKey() (string, error) {
	loadDotEnv()
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key, nil
	}
	return "", ErrNoAPIKey
}

// ChatModel returns the OpenAI chat model name, defaulting to DefaultChatModel.
func ChatModel() string {
	loadDotEnv()
	if m := os.Getenv("OPENAI_MODEL"); m != "" {
		return m
	}
	return DefaultChatModel
}

// SSHPassword returns the robot's SSH password from NAO_PASSWORD or the
// factory default.
func SSHPassword() string {
	loadDotEnv()
	if pass := os.Getenv("NAO_PASSWORD"); pass != "" {
		return pass
	}
	return DefaultSSHPass
}

// LogLevel returns the log level from NAO_LOG_LEVEL, defaulting to "info".
func LogLevel() string {
	loadDotEnv()
	if lvl := os.Getenv("NAO_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
