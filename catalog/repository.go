// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package catalog keeps a curated set of sites in DuckDB so several
// source files can be merged once and rendered many times.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jcodagnone/mineralmap/sites"
	"github.com/jcodagnone/mineralmap/spatial"
	"github.com/jcodagnone/mineralmap/utils"
)

// ErrNotEmpty is returned when importing over existing sites.
var ErrNotEmpty = errors.New("catalog is not empty")

// Query narrows List. Zero fields do not filter.
type Query struct {
	// Name matches a substring of the site name, ignoring case and accents.
	Name string
	// Kind and State match whole values, ignoring case and accents.
	Kind  string
	State string
	// Cell is a hexadecimal H3 index at any stored resolution.
	Cell string
	// Match is applied after the SQL filters.
	Match  sites.Filter
	Limit  int
	Offset int
}

// CellCount is the number of sites inside one H3 cell.
type CellCount struct {
	Cell  string `json:"cell"`
	Count int    `json:"count"`
}

// SiteRepository handles persistence of sites.
type SiteRepository interface {
	// CreateSchema creates the sites table
	CreateSchema() error

	// BulkInsert inserts sites in a single transaction
	BulkInsert(sites []sites.Site) error

	// List returns the sites matching q, in insertion order
	List(q Query) ([]sites.Site, error)

	// Count returns the number of sites
	Count() (int, error)

	// AllSorted returns every site ordered by name, category and position
	AllSorted() ([]sites.Site, error)

	// Density counts sites per H3 cell at one resolution, busiest first
	Density(res int) ([]CellCount, error)

	// DeleteAll removes every site
	DeleteAll() error

	// DB returns the underlying database connection
	DB() *sql.DB
}

type sqlSiteRepository struct {
	db *sql.DB
}

// NewSiteRepository creates a new site repository.
func NewSiteRepository(db *sql.DB) SiteRepository {
	return &sqlSiteRepository{db: db}
}

func (r *sqlSiteRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlSiteRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS sites_seq START 1;

		CREATE TABLE IF NOT EXISTS sites (
			id INTEGER PRIMARY KEY DEFAULT nextval('sites_seq'),
			name VARCHAR NOT NULL,
			name_folded VARCHAR NOT NULL,
			category VARCHAR NOT NULL,
			kind VARCHAR NOT NULL,
			kind_folded VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			notes TEXT NOT NULL,
			state VARCHAR NOT NULL,
			state_folded VARCHAR NOT NULL,
			grade VARCHAR NOT NULL,
			point VARCHAR NOT NULL,
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			source VARCHAR NOT NULL,
			h3_res1 UBIGINT,
			h3_res2 UBIGINT,
			h3_res3 UBIGINT,
			h3_res4 UBIGINT,
			h3_res5 UBIGINT,
			h3_res6 UBIGINT,
			h3_res7 UBIGINT,
			h3_res8 UBIGINT
		);
	`)
	if err != nil {
		return fmt.Errorf("error creating sites table: %w", err)
	}

	return nil
}

func (r *sqlSiteRepository) BulkInsert(all []sites.Site) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sites(
			name,
			name_folded,
			category,
			kind,
			kind_folded,
			status,
			notes,
			state,
			state_folded,
			grade,
			point,
			lat,
			lng,
			source,
			h3_res1,
			h3_res2,
			h3_res3,
			h3_res4,
			h3_res5,
			h3_res6,
			h3_res7,
			h3_res8
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Join(err, tx.Rollback())
	}
	defer stmt.Close()

	for i, s := range all {
		if err := spatial.ValidateLatLon(s.Point.Lat, s.Point.Lng); err != nil {
			return errors.Join(fmt.Errorf("site %d (%s): %w", i, s.Name, err), tx.Rollback())
		}

		cells, err := spatial.Cells(s.Point)
		if err != nil {
			return errors.Join(fmt.Errorf("site %d (%s): %w", i, s.Name, err), tx.Rollback())
		}

		_, err = stmt.Exec(
			s.Name,
			utils.LowerASCIIFolding(s.Name),
			s.Category,
			s.Kind,
			utils.LowerASCIIFolding(s.Kind),
			s.Status,
			s.Notes,
			s.State,
			utils.LowerASCIIFolding(s.State),
			s.Grade,
			s.Point.String(),
			s.Point.Lat,
			s.Point.Lng,
			s.Source,
			cells[0],
			cells[1],
			cells[2],
			cells[3],
			cells[4],
			cells[5],
			cells[6],
			cells[7],
		)
		if err != nil {
			return errors.Join(fmt.Errorf("inserting site %d (%s): %w", i, s.Name, err), tx.Rollback())
		}
	}

	return tx.Commit()
}

var baseSelect = `
	SELECT name, category, kind, status, notes, state, grade, point, source
	FROM sites
`

func (r *sqlSiteRepository) list(query string, args []any, match sites.Filter) ([]sites.Site, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []sites.Site

	for rows.Next() {
		var s sites.Site

		err := rows.Scan(
			&s.Name, &s.Category, &s.Kind, &s.Status,
			&s.Notes, &s.State, &s.Grade, &s.Point, &s.Source,
		)
		if err != nil {
			return nil, err
		}

		if match == nil || match(s) {
			ret = append(ret, s)
		}
	}

	return ret, rows.Err()
}

func (r *sqlSiteRepository) List(q Query) ([]sites.Site, error) {
	var (
		where []string
		args  []any
	)

	if name := utils.LowerASCIIFolding(q.Name); name != "" {
		where = append(where, "contains(name_folded, ?)")
		args = append(args, name)
	}

	if q.Kind != "" {
		where = append(where, "kind_folded = ?")
		args = append(args, utils.LowerASCIIFolding(q.Kind))
	}

	if q.State != "" {
		where = append(where, "state_folded = ?")
		args = append(args, utils.LowerASCIIFolding(q.State))
	}

	if q.Cell != "" {
		cell, res, err := spatial.ParseCell(q.Cell)
		if err != nil {
			return nil, err
		}

		where = append(where, fmt.Sprintf("h3_res%d = ?", res))
		args = append(args, cell)
	}

	query := baseSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY id"

	ret, err := r.list(query, args, q.Match)
	if err != nil {
		return nil, err
	}

	// Match runs in Go, so paging has to as well.
	if q.Offset > 0 {
		ret = ret[min(q.Offset, len(ret)):]
	}

	if q.Limit > 0 && len(ret) > q.Limit {
		ret = ret[:q.Limit]
	}

	return ret, nil
}

func (r *sqlSiteRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM sites",
	).Scan(&count)

	return count, err
}

func (r *sqlSiteRepository) AllSorted() ([]sites.Site, error) {
	return r.list(baseSelect+` ORDER BY name, category, lat, lng, source`, nil, nil)
}

func (r *sqlSiteRepository) Density(res int) ([]CellCount, error) {
	if res < spatial.MinCellResolution || res > spatial.MaxCellResolution {
		return nil, fmt.Errorf("resolution %d out of range %d..%d",
			res, spatial.MinCellResolution, spatial.MaxCellResolution)
	}

	column := fmt.Sprintf("h3_res%d", res)

	rows, err := r.db.Query(`
		SELECT ` + column + `, COUNT(*) AS n
		FROM sites
		GROUP BY ` + column + `
		ORDER BY n DESC, ` + column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []CellCount

	for rows.Next() {
		var (
			cell  uint64
			count int
		)

		if err := rows.Scan(&cell, &count); err != nil {
			return nil, err
		}

		ret = append(ret, CellCount{Cell: spatial.CellString(cell), Count: count})
	}

	return ret, rows.Err()
}

func (r *sqlSiteRepository) DeleteAll() error {
	_, err := r.db.Exec("DELETE FROM sites")

	return err
}
