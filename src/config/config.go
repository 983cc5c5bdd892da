// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads cvs-transport settings from a JSON or YAML file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvFile names the environment variable holding the config file path.
	EnvFile = "CVS_TRANSPORT_CONFIG"
	// EnvKey names the environment variable holding the transform key.
	EnvKey = "CVS_TRANSPORT_KEY"
)

// Transform names accepted in packet.transform.
const (
	TransformIdentity  = "identity"
	TransformXChaCha20 = "xchacha20"
)

// Log formats accepted in log.format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultCompressLevel selects the deflate library's default level.
const DefaultCompressLevel = -1

// format represents supported configuration file formats.
type format int

const (
	// formatJSON represents JSON configuration format (.json)
	formatJSON format = iota
	// formatYAML represents YAML configuration format (.yaml, .yml)
	formatYAML
)

// Config is the cvs-transport configuration.
//
// The file path comes from the caller or the CVS_TRANSPORT_CONFIG
// environment variable. Missing or invalid values fall back to defaults.
// Supported file extensions: .json, .yaml, .yml
type Config struct {
	// Pool: segment pool settings
	Pool struct {
		// MaxSegments caps the number of segments ever allocated (0 = unlimited)
		MaxSegments int `json:"maxSegments" yaml:"maxSegments"`
	} `json:"pool" yaml:"pool"`

	// Packet: packetizing layer settings
	Packet struct {
		// Transform is "identity" or "xchacha20"
		Transform string `json:"transform" yaml:"transform"`
		// Key is the passphrase for xchacha20 (can also be set via CVS_TRANSPORT_KEY env var)
		Key string `json:"key,omitempty" yaml:"key,omitempty"`
		// Compress selects the unframed deflate stream instead of packets
		Compress bool `json:"compress" yaml:"compress"`
		// CompressLevel is the deflate level, -1 for the default or 0 to 9
		CompressLevel int `json:"compressLevel" yaml:"compressLevel"`
	} `json:"packet" yaml:"packet"`

	// Lines: line relay settings
	Lines struct {
		// Command is the single byte prefixed to every relayed line
		Command string `json:"command" yaml:"command"`
		// Charset is the charset of incoming lines, converted to UTF-8
		Charset string `json:"charset,omitempty" yaml:"charset,omitempty"`
	} `json:"lines" yaml:"lines"`

	// Log: logging settings
	Log struct {
		// Format is "text" or "json"
		Format string `json:"format" yaml:"format"`
		// Level is a zap level name such as "debug" or "info"
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.Packet.Transform = TransformIdentity
	c.Packet.CompressLevel = DefaultCompressLevel
	c.Lines.Command = "M"
	c.Log.Format = LogFormatText
	c.Log.Level = "info"
	return c
}

// detectFormat determines the configuration file format based on file extension,
// case-insensitively.
func detectFormat(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// unmarshal decodes data in the given format into c.
func unmarshal(data []byte, c *Config, f format) error {
	switch f {
	case formatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration.
//
// Configuration Priority:
//  1. Default values are set
//  2. CVS_TRANSPORT_CONFIG environment variable is checked if path is empty
//  3. Config file values override defaults (if a path is known)
//  4. CVS_TRANSPORT_KEY overrides an empty packet.key
func Load(path string) (*Config, error) {
	c := Default()

	if path == "" {
		path = os.Getenv(EnvFile)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := unmarshal(data, c, detectFormat(path)); err != nil {
			return nil, err
		}
		c.sanitize()
	}

	if c.Packet.Key == "" {
		c.Packet.Key = os.Getenv(EnvKey)
	}
	return c, nil
}

// sanitize resets invalid values to their defaults.
func (c *Config) sanitize() {
	d := Default()
	if c.Pool.MaxSegments < 0 {
		c.Pool.MaxSegments = 0
	}
	switch c.Packet.Transform {
	case TransformIdentity, TransformXChaCha20:
	default:
		c.Packet.Transform = d.Packet.Transform
	}
	if c.Packet.CompressLevel < DefaultCompressLevel || c.Packet.CompressLevel > 9 {
		c.Packet.CompressLevel = d.Packet.CompressLevel
	}
	if len(c.Lines.Command) != 1 {
		c.Lines.Command = d.Lines.Command
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		c.Log.Format = d.Log.Format
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
