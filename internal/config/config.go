// Package config resolves the connection, profile, and UI settings the CLI
// surface needs from three layers: built-in defaults, the TOML config file,
// and command-line flags. Which layer wins depends on the setting: see
// Resolve.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/studiowebux/redis-nav/internal/protection"
)

// DefaultConfigDir is the per-user directory config.toml lives in when no
// --config flag is given.
const DefaultConfigDir = "redis-nav"

// File is the parsed shape of config.toml.
type File struct {
	Defaults Defaults           `toml:"defaults"`
	Profiles map[string]Profile `toml:"profiles"`
}

// Defaults holds settings that apply when no profile overrides them.
type Defaults struct {
	Delimiters []string `toml:"delimiters"`
	Theme      string   `toml:"theme"`
}

// Profile is one named `[profiles.<name>]` connection preset.
type Profile struct {
	URL                 string                  `toml:"url"`
	Host                string                  `toml:"host"`
	Port                int                     `toml:"port"`
	Password            string                  `toml:"password"`
	PasswordEnv         string                  `toml:"password_env"`
	DB                  int                     `toml:"db"`
	Delimiters          []string                `toml:"delimiters"`
	Readonly            bool                    `toml:"readonly"`
	ProtectedNamespaces []ProtectedNamespaceSpec `toml:"protected_namespaces"`
}

// ProtectedNamespaceSpec is a `[[profiles.<name>.protected_namespaces]]`
// entry as written in TOML, before being resolved into protection.Namespace.
type ProtectedNamespaceSpec struct {
	Prefix string `toml:"prefix"`
	Level  string `toml:"level"`
}

// Load reads and parses a config.toml at path. A missing file is not an
// error: it is treated as an empty File so defaults-only operation works
// without requiring a config file to exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Profiles: map[string]Profile{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]Profile{}
	}
	return &f, nil
}

// DefaultPath returns the platform-appropriate config.toml path used when
// no --config flag is given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, DefaultConfigDir, "config.toml"), nil
}

// CLI mirrors the flag set the command line exposes (§6), unresolved
// against any profile yet.
type CLI struct {
	Connection string
	Host       string
	Port       int
	Password   string
	DB         int
	Delimiters []string
	Profile    string
	Readonly   bool
}

// Resolved is the fully merged connection configuration ready to hand to
// redisstore.Connect.
type Resolved struct {
	Addr       string
	Password   string
	DB         int
	Delimiters []string
	Readonly   bool
	Namespaces []protection.Namespace
}

// Resolve merges cli, the named/positional profile, and f.Defaults. A
// selected profile's non-zero db overrides -n; readonly is on if either
// --readonly or the profile sets it; -d delimiters override the profile's,
// which override [defaults]. Profile selection follows positional profile name over --profile (§6);
// address resolution follows positional URL over profile url/host/port over
// cli host/port flags; password resolution follows profile.password over
// profile.password_env over --password over $REDIS_PASSWORD.
func Resolve(f *File, cli CLI) (Resolved, error) {
	var profileName string
	if cli.Connection != "" {
		if _, ok := f.Profiles[cli.Connection]; ok {
			profileName = cli.Connection
		}
	}
	if profileName == "" {
		profileName = cli.Profile
	}

	var profile Profile
	var hasProfile bool
	if profileName != "" {
		p, ok := f.Profiles[profileName]
		if !ok {
			return Resolved{}, fmt.Errorf("unknown profile %q", profileName)
		}
		profile, hasProfile = p, true
	}

	addr, err := resolveAddr(cli, profile, hasProfile)
	if err != nil {
		return Resolved{}, err
	}

	password := resolvePassword(cli, profile)

	db := cli.DB
	if hasProfile && profile.DB != 0 {
		db = profile.DB
	}

	readonly := cli.Readonly || (hasProfile && profile.Readonly)

	delims := cli.Delimiters
	if len(delims) == 0 && hasProfile && len(profile.Delimiters) > 0 {
		delims = profile.Delimiters
	}
	if len(delims) == 0 {
		delims = f.Defaults.Delimiters
	}
	if len(delims) == 0 {
		delims = []string{":"}
	}

	var namespaces []protection.Namespace
	if hasProfile {
		for _, ns := range profile.ProtectedNamespaces {
			namespaces = append(namespaces, protection.Namespace{
				Prefix: ns.Prefix,
				Level:  parseLevel(ns.Level),
			})
		}
	}

	return Resolved{
		Addr:       addr,
		Password:   password,
		DB:         db,
		Delimiters: delims,
		Readonly:   readonly,
		Namespaces: namespaces,
	}, nil
}

// resolveAddr applies the precedence: positional URL, then profile url,
// then profile host/port, then cli host/port flags.
func resolveAddr(cli CLI, profile Profile, hasProfile bool) (string, error) {
	if cli.Connection != "" && strings.Contains(cli.Connection, "://") {
		return stripScheme(cli.Connection)
	}
	if hasProfile && profile.URL != "" {
		return stripScheme(profile.URL)
	}
	if hasProfile && profile.Host != "" {
		port := profile.Port
		if port == 0 {
			port = cli.Port
		}
		return fmt.Sprintf("%s:%d", profile.Host, port), nil
	}
	host := cli.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := cli.Port
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port), nil
}

func stripScheme(url string) (string, error) {
	s := strings.TrimPrefix(url, "redis://")
	s = strings.TrimPrefix(s, "rediss://")
	if s == "" {
		return "", fmt.Errorf("empty redis url")
	}
	if !strings.Contains(s, ":") {
		s = s + ":6379"
	}
	return s, nil
}

// resolvePassword applies: profile.password, then profile.password_env's
// named variable, then --password, then $REDIS_PASSWORD.
func resolvePassword(cli CLI, profile Profile) string {
	if profile.Password != "" {
		return profile.Password
	}
	if profile.PasswordEnv != "" {
		if v := os.Getenv(profile.PasswordEnv); v != "" {
			return v
		}
	}
	if cli.Password != "" {
		return cli.Password
	}
	return os.Getenv("REDIS_PASSWORD")
}

func parseLevel(s string) protection.Level {
	switch strings.ToLower(s) {
	case "confirm":
		return protection.Confirm
	case "block":
		return protection.Block
	default:
		return protection.Warn
	}
}

// ParseDelimiterFlag splits a repeated -d flag value list that may itself
// contain multi-character tokens back into a clean delimiter slice,
// defensively tolerating callers that pass one comma-joined flag value.
func ParseDelimiterFlag(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParsePort parses a port flag value, used by the CLI wiring to validate
// user-supplied strings before they reach Resolve.
func ParsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q: %w", s, err)
	}
	return p, nil
}
