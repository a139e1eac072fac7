package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/albums1001/albums/internal/network"
	"go.uber.org/zap"
)

// LayoutFingerprint identifies a layout request: the node order, the edges
// and every parameter that influences the result.
func LayoutFingerprint(nodes []string, edges []network.EdgeRef, params network.LayoutParams) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(strconv.Itoa(len(s))))
		h.Write([]byte{':'})
		h.Write([]byte(s))
	}

	write(strconv.FormatFloat(params.K, 'g', -1, 64))
	write(strconv.Itoa(params.Iterations))
	write(strconv.FormatInt(params.Seed, 10))
	write(strconv.FormatFloat(params.Scale, 'g', -1, 64))
	write("nodes")
	for _, n := range nodes {
		write(n)
	}
	write("edges")
	for _, e := range edges {
		write(e.Source)
		write(e.Target)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadLayout returns the cached positions for fingerprint, or nil if none
// are stored.
func (d *DB) LoadLayout(fingerprint string) (map[string]network.Position, error) {
	rows, err := d.db.Query(`SELECT node_id, x, y FROM layout_positions WHERE fingerprint = ?`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("querying layout: %w", err)
	}
	defer rows.Close()

	var out map[string]network.Position
	for rows.Next() {
		var id string
		var p network.Position
		if err := rows.Scan(&id, &p.X, &p.Y); err != nil {
			return nil, err
		}
		if out == nil {
			out = make(map[string]network.Position)
		}
		out[id] = p
	}
	return out, rows.Err()
}

// SaveLayout stores positions under fingerprint, replacing any previous entry.
func (d *DB) SaveLayout(fingerprint string, positions map[string]network.Position) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning layout save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM layout_positions WHERE fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("clearing layout: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO layout_positions (fingerprint, node_id, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing layout insert: %w", err)
	}
	defer stmt.Close()

	for id, p := range positions {
		if _, err := stmt.Exec(fingerprint, id, p.X, p.Y); err != nil {
			return fmt.Errorf("inserting position for %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing layout: %w", err)
	}
	return nil
}

// ClearLayouts removes every cached layout.
func (d *DB) ClearLayouts() error {
	_, err := d.db.Exec("DELETE FROM layout_positions")
	return err
}

// LayoutCache is a network.Layouter that remembers results in the database.
// A cache miss or a database error falls through to the wrapped layouter.
type LayoutCache struct {
	db     *DB
	inner  network.Layouter
	logger *zap.SugaredLogger
}

// NewLayoutCache wraps inner with a database-backed cache. A nil inner uses
// network.EadesLayout; a nil logger discards messages.
func NewLayoutCache(db *DB, inner network.Layouter, logger *zap.SugaredLogger) *LayoutCache {
	if inner == nil {
		inner = network.EadesLayout{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LayoutCache{db: db, inner: inner, logger: logger.Named("layout-cache")}
}

// Layout implements network.Layouter.
func (c *LayoutCache) Layout(nodes []string, edges []network.EdgeRef, params network.LayoutParams) map[string]network.Position {
	if len(nodes) == 0 {
		return map[string]network.Position{}
	}

	fp := LayoutFingerprint(nodes, edges, params)
	cached, err := c.db.LoadLayout(fp)
	if err != nil {
		c.logger.Warnw("reading cached layout", "error", err)
	} else if covers(cached, nodes) {
		c.logger.Debugw("layout cache hit", "fingerprint", fp[:12], "nodes", len(nodes))
		return cached
	}

	positions := c.inner.Layout(nodes, edges, params)
	if err := c.db.SaveLayout(fp, positions); err != nil {
		c.logger.Warnw("saving layout", "error", err)
	} else {
		c.logger.Debugw("layout cached", "fingerprint", fp[:12], "nodes", len(nodes))
	}
	return positions
}

func covers(positions map[string]network.Position, nodes []string) bool {
	if len(positions) != len(nodes) {
		return false
	}
	for _, n := range nodes {
		if _, ok := positions[n]; !ok {
			return false
		}
	}
	return true
}
