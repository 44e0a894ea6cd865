// Package database opens the MongoDB client and exposes the fixed set of
// named logical databases used by the HTTP handlers.
package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Handles maps logical names to database handles derived from one client.
// It is read-only after Connect returns.
type Handles struct {
	client *mongo.Client
	dbs    map[string]*mongo.Database
}

// Connect builds a client for uri and opens the main, analytics and logs
// handles. The driver dials lazily, so no round trip happens here.
func Connect(_ context.Context, uri string, opts ...Option) (*Handles, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("%w: empty connection uri", ErrConnect)
	}
	if s.names[Main] == "" {
		return nil, fmt.Errorf("%w: main database name not set", ErrConnect)
	}

	clientOpts := options.Client().ApplyURI(uri).SetAppName(s.appName)
	if s.serverSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(s.serverSelectionTimeout)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	h := &Handles{
		client: client,
		dbs:    make(map[string]*mongo.Database, len(s.names)),
	}
	for logical, name := range s.names {
		h.dbs[logical] = client.Database(name)
	}
	return h, nil
}

// Get returns the handle registered under name.
func (h *Handles) Get(name string) (*mongo.Database, bool) {
	db, ok := h.dbs[name]
	return db, ok
}

// Main returns the main database handle.
func (h *Handles) Main() *mongo.Database {
	return h.dbs[Main]
}

// Names lists the logical handle names in sorted order.
func (h *Handles) Names() []string {
	names := make([]string, 0, len(h.dbs))
	for n := range h.dbs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len reports how many handles are open.
func (h *Handles) Len() int {
	return len(h.dbs)
}

// Disconnect closes the underlying client.
func (h *Handles) Disconnect(ctx context.Context) error {
	if err := h.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	return nil
}
