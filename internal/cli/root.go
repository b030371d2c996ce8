package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/haikegani/QuitSmoke/internal/config"
	"github.com/haikegani/QuitSmoke/internal/constants"
	apperrors "github.com/haikegani/QuitSmoke/internal/errors"
	"github.com/haikegani/QuitSmoke/internal/keyring"
	"github.com/haikegani/QuitSmoke/internal/notifier"
	"github.com/haikegani/QuitSmoke/internal/storage"
	"github.com/haikegani/QuitSmoke/internal/storage/postgres"
	"github.com/haikegani/QuitSmoke/internal/storage/sqlite"
	"github.com/haikegani/QuitSmoke/internal/tracker"
)

// KeyringDB is the --db value that reads the PostgreSQL connection string
// from the OS keyring.
const KeyringDB = constants.KeyringDB

type Context struct {
	Config  config.Config
	Store   storage.Provider
	Tracker *tracker.Service
	UserID  string
	Out     io.Writer
}

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	Migrate() (int, error)
	SchemaVersion() (current, latest int, err error)
}

// New builds a command context around an already constructed store.
func New(cfg config.Config, store storage.Provider, opts ...tracker.Option) *Context {
	return &Context{
		Config:  cfg,
		Store:   store,
		Tracker: tracker.New(store, opts...),
		UserID:  cfg.User,
		Out:     os.Stdout,
	}
}

// NewFromConfig opens the store named by cfg.DB and wires the tray notifier.
// The store is not loaded.
func NewFromConfig(cfg config.Config) (*Context, error) {
	store, err := OpenStore(cfg.DB)
	if err != nil {
		return nil, err
	}
	return New(cfg, store, tracker.WithNotifier(notifier.New())), nil
}

// OpenStore picks a storage backend for target: the OS keyring, a
// PostgreSQL connection string, a .json file or, by default, SQLite.
func OpenStore(target string) (storage.Provider, error) {
	if target == KeyringDB {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, apperrors.WithHint(err, "store one with 'quitsmoke keyring set <connection-string>'")
			}
			return nil, err
		}
		// The keyring is encrypted, so embedded passwords are accepted here.
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if config.IsPostgresConnString(target) || strings.Contains(target, "host=") {
		if _, err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err,
					"use 'quitsmoke keyring set' with --db keyring, a .pgpass file or the PGPASSWORD environment variable")
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	if strings.HasSuffix(target, ".json") {
		return storage.NewJSONStore(target), nil
	}
	return sqlite.NewStore(target), nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Print writes to the context's output.
func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.out(), args...)
}

// Printf writes to the context's output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

// Println writes a line to the context's output.
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

// PrintJSON writes v as indented JSON.
func (c *Context) PrintJSON(v interface{}) error {
	enc := json.NewEncoder(c.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
