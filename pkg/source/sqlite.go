package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/praetorian-inc/pwmeter/pkg/store"
)

type sqliteSource struct {
	path string
}

// newSQLite parses sqlite:///abs/path.db or sqlite://rel/path.db.
func newSQLite(u *url.URL) (*sqliteSource, error) {
	path := u.Host + u.Path
	if u.Opaque != "" {
		path = u.Opaque
	}
	if path == "" {
		return nil, fmt.Errorf("sqlite location must name a database file")
	}
	return &sqliteSource{path: path}, nil
}

func (s *sqliteSource) Name() string { return "sqlite://" + s.path }

func (s *sqliteSource) Open(context.Context) (io.ReadCloser, error) {
	// Opening a missing path would create an empty database
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}

	db, err := store.NewSQLite(s.path)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	go func() {
		defer db.Close()
		_, err := db.WriteTo(pw)
		pw.CloseWithError(err)
	}()
	return pr, nil
}
