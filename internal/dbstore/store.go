// Package dbstore implements the relational storage backend. Entities are
// rows in one table per kind; changes are staged in a session and committed
// together by Save.
package dbstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Store implements types.Engine over database/sql.
type Store struct {
	mu      sync.Mutex
	dialect dialect
	db      *sql.DB
	sess    *session
}

// session is the unit of work between two Saves: an identity map of the
// entities this process has loaded or staged, plus staged deletions.
type session struct {
	tracked map[string]*tracked
	deleted map[string]types.Entity
}

// tracked pairs a live entity with its durable form as last read from or
// written to the database. An empty snapshot marks an entity that has never
// been written.
type tracked struct {
	entity   types.Entity
	snapshot string
}

func newSession() *session {
	return &session{
		tracked: make(map[string]*tracked),
		deleted: make(map[string]types.Entity),
	}
}

// New creates a store for cfg. No connection is made until Reload.
// A relative SQLite file name resolves against dataDir.
func New(cfg types.DBConfig, dataDir string) (*Store, error) {
	d, err := newDialect(cfg, dataDir)
	if err != nil {
		return nil, err
	}
	return &Store{dialect: d}, nil
}

// Driver returns the SQL driver name in use.
func (s *Store) Driver() string {
	return s.dialect.driver
}

// All queries every requested kind and returns the rows keyed by composite
// key. Rows already tracked by the session come back as the tracked
// instance. Staged entities that were never written are included; staged
// deletions are not.
func (s *Store) All(kind types.Kind) (map[string]types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, types.ErrClosed
	}
	sess := s.session()

	kinds := types.Kinds
	if kind != "" {
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, kind)
		}
		kinds = []types.Kind{kind}
	}

	result := make(map[string]types.Entity)
	for _, k := range kinds {
		if err := s.queryKind(sess, k, result); err != nil {
			return nil, err
		}
	}
	for key, t := range sess.tracked {
		if t.snapshot != "" {
			continue
		}
		if kind == "" || t.entity.Kind() == kind {
			result[key] = t.entity
		}
	}
	return result, nil
}

// queryKind loads every row of one kind into result, tracking new rows.
func (s *Store) queryKind(sess *session, kind types.Kind, result map[string]types.Entity) error {
	def := tables[kind]
	rows, err := s.db.Query(fmt.Sprintf("SELECT %s FROM %s", strings.Join(def.columns, ", "), def.name))
	if err != nil {
		return fmt.Errorf("querying %s: %w", def.name, err)
	}

	var loaded []*tracked
	var places []*types.Place
	for rows.Next() {
		fields, err := scanFields(rows, def.columns)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scanning %s: %w", def.name, err)
		}
		id, _ := fields["id"].(string)
		key := types.CompositeKey(kind, id)
		if _, gone := sess.deleted[key]; gone {
			continue
		}
		if t, ok := sess.tracked[key]; ok {
			result[key] = t.entity
			continue
		}
		e, err := types.New(kind, fields)
		if err != nil {
			rows.Close()
			return fmt.Errorf("loading %s: %w", key, err)
		}
		if p, ok := e.(*types.Place); ok {
			places = append(places, p)
		}
		t := &tracked{entity: e}
		loaded = append(loaded, t)
		sess.tracked[key] = t
		result[key] = e
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("reading %s: %w", def.name, err)
	}
	rows.Close()

	if len(places) > 0 {
		if err := s.loadAmenityIDs(places); err != nil {
			return err
		}
	}

	// Snapshots are taken once the entity is complete.
	for _, t := range loaded {
		if t.snapshot, err = snapshot(t.entity); err != nil {
			return err
		}
	}
	return nil
}

// loadAmenityIDs fills AmenityIDs of freshly loaded places from place_amenity.
func (s *Store) loadAmenityIDs(places []*types.Place) error {
	byID := make(map[string]*types.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}

	rows, err := s.db.Query("SELECT place_id, amenity_id FROM place_amenity ORDER BY place_id, amenity_id")
	if err != nil {
		return fmt.Errorf("querying place_amenity: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var placeID, amenityID string
		if err := rows.Scan(&placeID, &amenityID); err != nil {
			return fmt.Errorf("scanning place_amenity: %w", err)
		}
		if p, ok := byID[placeID]; ok {
			p.AmenityIDs = append(p.AmenityIDs, amenityID)
		}
	}
	return rows.Err()
}

// New stages e for insertion, or for update when a row with its key exists.
func (s *Store) New(e types.Entity) {
	if e == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session()
	key := types.Key(e)
	delete(sess.deleted, key)
	if t, ok := sess.tracked[key]; ok {
		t.entity = e
		return
	}
	sess.tracked[key] = &tracked{entity: e}
}

// Delete stages the removal of e. Nil is a no-op.
func (s *Store) Delete(e types.Entity) {
	if e == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session()
	key := types.Key(e)
	delete(sess.tracked, key)
	sess.deleted[key] = e
}

// Save commits the session in one transaction: staged deletions first,
// children before parents, then every new or modified tracked entity,
// parents before children. On failure nothing is committed and the staged
// changes stay pending.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return types.ErrClosed
	}
	sess := s.session()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for i := len(types.Kinds) - 1; i >= 0; i-- {
		for _, e := range sortedByKey(sess.deleted, types.Kinds[i]) {
			if err := deleteRow(tx, e); err != nil {
				return err
			}
		}
	}

	type written struct {
		t    *tracked
		snap string
	}
	var done []written
	for _, kind := range types.Kinds {
		for _, t := range sortedTracked(sess.tracked, kind) {
			snap, err := snapshot(t.entity)
			if err != nil {
				return err
			}
			if snap == t.snapshot {
				continue
			}
			if err := s.upsertRow(tx, t.entity); err != nil {
				return err
			}
			done = append(done, written{t, snap})
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	for _, w := range done {
		w.t.snapshot = w.snap
	}
	sess.deleted = make(map[string]types.Entity)
	return nil
}

func deleteRow(tx *sql.Tx, e types.Entity) error {
	id := e.Base().ID
	switch e.Kind() {
	case types.KindPlace:
		if _, err := tx.Exec("DELETE FROM place_amenity WHERE place_id = ?", id); err != nil {
			return fmt.Errorf("unlinking amenities of %s: %w", types.Key(e), err)
		}
	case types.KindAmenity:
		if _, err := tx.Exec("DELETE FROM place_amenity WHERE amenity_id = ?", id); err != nil {
			return fmt.Errorf("unlinking places of %s: %w", types.Key(e), err)
		}
	}
	def := tables[e.Kind()]
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", def.name), id); err != nil {
		return fmt.Errorf("deleting %s: %w", types.Key(e), err)
	}
	return nil
}

func (s *Store) upsertRow(tx *sql.Tx, e types.Entity) error {
	def := tables[e.Kind()]
	fields := e.ToMap(true)
	args := make([]any, len(def.columns))
	for i, col := range def.columns {
		args[i] = fields[col]
	}
	if _, err := tx.Exec(s.dialect.upsertSQL(def), args...); err != nil {
		return fmt.Errorf("writing %s: %w", types.Key(e), err)
	}

	p, ok := e.(*types.Place)
	if !ok {
		return nil
	}
	if _, err := tx.Exec("DELETE FROM place_amenity WHERE place_id = ?", p.ID); err != nil {
		return fmt.Errorf("resetting amenities of %s: %w", types.Key(e), err)
	}
	amenityIDs, _ := fields["amenity_ids"].([]string)
	for _, amenityID := range amenityIDs {
		if _, err := tx.Exec("INSERT INTO place_amenity (place_id, amenity_id) VALUES (?, ?)", p.ID, amenityID); err != nil {
			return fmt.Errorf("linking amenity %s to %s: %w", amenityID, types.Key(e), err)
		}
	}
	return nil
}

// Reload opens the connection if needed, creates any missing tables, and
// starts a fresh session. Staged changes from the previous session are
// discarded.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(); err != nil {
		return err
	}
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	s.sess = newSession()
	return nil
}

// DropAll drops every table. It is destructive and must be requested
// explicitly; Reload never calls it. The session is discarded.
func (s *Store) DropAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.openLocked(); err != nil {
		return err
	}
	for _, ddl := range dropDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("dropping schema: %w", err)
		}
	}
	s.sess = nil
	return nil
}

// Close discards the session and closes the connection. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sess = nil
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) openLocked() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open(s.dialect.driver, s.dialect.dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", s.dialect.driver, err)
	}
	if s.dialect.maxConns > 0 {
		db.SetMaxOpenConns(s.dialect.maxConns)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s database: %w", s.dialect.driver, err)
	}
	s.db = db
	return nil
}

// session returns the current session, starting one if none is open.
// The caller must hold s.mu.
func (s *Store) session() *session {
	if s.sess == nil {
		s.sess = newSession()
	}
	return s.sess
}

// snapshot renders the durable form used for change detection.
func snapshot(e types.Entity) (string, error) {
	b, err := json.Marshal(e.ToMap(true))
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", types.Key(e), err)
	}
	return string(b), nil
}

// scanFields reads one row into a column-name keyed map. Byte slices become
// strings and NULLs are left out.
func scanFields(rows *sql.Rows, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	fields := make(map[string]any, len(columns))
	for i, col := range columns {
		switch v := values[i].(type) {
		case nil:
		case []byte:
			fields[col] = string(v)
		default:
			fields[col] = v
		}
	}
	return fields, nil
}

func sortedByKey(m map[string]types.Entity, kind types.Kind) []types.Entity {
	keys := make([]string, 0, len(m))
	for k, e := range m {
		if e.Kind() == kind {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]types.Entity, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

func sortedTracked(m map[string]*tracked, kind types.Kind) []*tracked {
	keys := make([]string, 0, len(m))
	for k, t := range m {
		if t.entity.Kind() == kind {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := make([]*tracked, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out
}

var (
	_ types.Engine   = (*Store)(nil)
	_ types.Resetter = (*Store)(nil)
)
