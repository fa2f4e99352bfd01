package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mandelsoft/datacontainer/pkg/provider"
)

const schema = `
CREATE TABLE IF NOT EXISTS models (
  provider   TEXT NOT NULL,
  id         TEXT NOT NULL,
  properties TEXT NOT NULL,
  PRIMARY KEY (provider, id)
)`

// Store is an environment keeping the models of all
// providers in a single sqlite table.
type Store struct {
	lock      sync.Mutex
	db        *sql.DB
	providers map[string]*Provider
}

var _ provider.Environment = (*Store)(nil)

// Open opens (and initializes) a sqlite database.
// Use ":memory:" for a transient database.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open sqlite database %q: %w", dsn, err)
	}
	// in-memory databases exist per connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize sqlite database %q: %w", dsn, err)
	}
	return &Store{db: db, providers: map[string]*Provider{}}, nil
}

// Check verifies that the database is accessible.
func (s *Store) Check() error {
	return s.db.Ping()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Provider(name string) (provider.DataProvider, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	p := s.providers[name]
	if p == nil {
		p = &Provider{store: s, name: name}
		s.providers[name] = p
	}
	return p, nil
}

// ProviderNames lists all providers with stored models.
func (s *Store) ProviderNames() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT provider FROM models ORDER BY provider`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var r []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		r = append(r, n)
	}
	return r, rows.Err()
}

type Specification struct {
	DSN string
}

var _ provider.Specification = (*Specification)(nil)

func NewSpecification(dsn string) *Specification {
	return &Specification{DSN: dsn}
}

func (s *Specification) Create() (provider.Environment, error) {
	return Open(s.DSN)
}
