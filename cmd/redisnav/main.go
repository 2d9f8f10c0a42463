package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studiowebux/redis-nav/internal/config"
	"github.com/studiowebux/redis-nav/internal/editorbridge"
	"github.com/studiowebux/redis-nav/internal/history"
	"github.com/studiowebux/redis-nav/internal/protection"
	"github.com/studiowebux/redis-nav/internal/redisstore"
	"github.com/studiowebux/redis-nav/internal/tui"
	"github.com/studiowebux/redis-nav/internal/worker"
)

var appVersion = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redis-nav [connection]",
	Short: "A terminal navigator and editor for Redis key spaces",
	Long: `redis-nav browses a Redis keyspace as a tree, grouped by delimiter,
and lets you inspect, edit, and delete values without leaving the terminal.

connection may be a URL (redis://... or rediss://...) or the name of a
profile declared in the config file.`,
	Version: appVersion,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

var (
	flagHost       string
	flagPort       string
	flagPassword   string
	flagDB         int
	flagDelimiters []string
	flagProfile    string
	flagReadonly   bool
	flagConfigPath string
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagHost, "host", "H", "127.0.0.1", "Redis host")
	flags.StringVarP(&flagPort, "port", "p", "6379", "Redis port")
	flags.StringVarP(&flagPassword, "password", "a", "", "Redis password (also honors $REDIS_PASSWORD)")
	flags.IntVarP(&flagDB, "db", "n", 0, "Redis logical database")
	flags.StringArrayVarP(&flagDelimiters, "delimiter", "d", nil, "Key delimiter, repeatable (default ':')")
	flags.StringVar(&flagProfile, "profile", "", "Named profile from the config file")
	flags.BoolVar(&flagReadonly, "readonly", false, "Disallow writes and deletes")
	flags.StringVar(&flagConfigPath, "config", "", "Path to config.toml (default: <user-config-dir>/redis-nav/config.toml)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if closeLog := initFileLog(); closeLog != nil {
		defer closeLog()
	}

	configPath := flagConfigPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve default config path: %w", err)
		}
		configPath = p
	}

	file, err := config.Load(configPath)
	if err != nil {
		log.Printf("startup: load config %s: %v", configPath, err)
		return fmt.Errorf("load config: %w", err)
	}

	var connection string
	if len(args) > 0 {
		connection = args[0]
	}

	port, err := config.ParsePort(flagPort)
	if err != nil {
		return err
	}

	resolved, err := config.Resolve(file, config.CLI{
		Connection: connection,
		Host:       flagHost,
		Port:       port,
		Password:   flagPassword,
		DB:         flagDB,
		Delimiters: config.ParseDelimiterFlag(flagDelimiters),
		Profile:    flagProfile,
		Readonly:   flagReadonly,
	})
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	ctx := context.Background()
	store, err := redisstore.Connect(ctx, redisstore.Options{
		Addr:     resolved.Addr,
		Password: resolved.Password,
		DB:       resolved.DB,
	})
	if err != nil {
		log.Printf("startup: connect to redis at %s: %v", resolved.Addr, err)
		return err
	}
	log.Printf("connected to redis at %s (db %d)", resolved.Addr, resolved.DB)

	bus := worker.NewBus(store)
	defer bus.Close()

	editor, err := editorbridge.New()
	if err != nil {
		return fmt.Errorf("init editor bridge: %w", err)
	}

	histPath, err := historyDBPath()
	if err != nil {
		return fmt.Errorf("resolve history db path: %w", err)
	}
	hist, err := history.NewManager(histPath)
	if err != nil {
		return fmt.Errorf("open history db: %w", err)
	}
	defer hist.Close()

	policy := protection.NewPolicy(resolved.Namespaces)

	delimiters := make([]rune, 0, len(resolved.Delimiters))
	for _, d := range resolved.Delimiters {
		for _, r := range d {
			delimiters = append(delimiters, r)
			break
		}
	}

	return tui.Run(tui.Options{
		Bus:        bus,
		Delimiters: delimiters,
		Policy:     policy,
		Editor:     editor,
		History:    hist,
		Profile:    profileLabel(file, connection, flagProfile),
		Readonly:   resolved.Readonly,
		AppVersion: appVersion,
	})
}

// profileLabel picks the name under which visits are recorded: the
// positional connection argument if it names a profile, else --profile,
// else "default".
func profileLabel(file *config.File, connection, profile string) string {
	if _, ok := file.Profiles[connection]; ok && connection != "" {
		return connection
	}
	if profile != "" {
		return profile
	}
	return "default"
}

func historyDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.DefaultConfigDir, "history.db"), nil
}

// initFileLog redirects the standard logger to a file under the config
// directory so startup and background worker failures are diagnosable
// after the alt-screen TUI has exited. Returns nil (no-op cleanup) if the
// log file can't be opened, in which case log output falls back to stderr.
func initFileLog() func() {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	logDir := filepath.Join(dir, config.DefaultConfigDir)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, "redis-nav.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime)
	return func() { f.Close() }
}
