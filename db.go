package ttf2pcx

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"log"

	"github.com/humbertodias/ttf2pcx/fonts"
	_ "github.com/mattn/go-sqlite3"
)

// FontDB is an index of font files on disk by family and style. Only the
// location of each file is stored, fonts are parsed again when loaded.
type FontDB struct {
	db     *sql.DB
	logger *log.Logger
}

// NewFontDB opens or creates the font index stored in file.
func NewFontDB(file string, logger *log.Logger) (*FontDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS font (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, path TEXT NOT NULL, family TEXT NOT NULL COLLATE NOCASE, style INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS font_family ON font (family, style)"); err != nil {
		db.Close()
		return nil, err
	}

	return &FontDB{
		db:     db,
		logger: logger,
	}, nil
}

// Close closes the underlying database.
func (db *FontDB) Close() error {
	return db.db.Close()
}

type fontRecord struct {
	sha1   string
	path   string
	family string
	style  fonts.Style
}

func sha1Sum(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}

func (db *FontDB) addFont(r fontRecord) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM font WHERE sha1 = ?", r.sha1).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO font (sha1, path, family, style) VALUES (?, ?, ?, ?)", r.sha1, r.path, r.family, int(r.style))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		// Same font seen before, possibly moved
		if _, err := db.db.Exec("UPDATE font SET path = ? WHERE id = ?", r.path, id); err != nil {
			return 0, err
		}
		return id, nil
	default:
		return 0, err
	}
}

// FindFamily returns the paths of every indexed font in the family.
func (db *FontDB) FindFamily(family string) ([]string, error) {
	rows, err := db.db.Query("SELECT path FROM font WHERE family = ? ORDER BY style, id", family)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		return nil, fonts.ErrUnknownFamily
	}
	return paths, nil
}

// LoadFamily adds every indexed font in the family to l. Files that have
// gone missing or no longer parse are skipped.
func (db *FontDB) LoadFamily(l *fonts.Library, family string) error {
	paths, err := db.FindFamily(family)
	if err != nil {
		return err
	}

	var loaded int
	for _, path := range paths {
		if _, err := l.ParseFromPath(path); err != nil {
			db.logger.Printf("Unable to load \"%s\": %s\n", path, err)
			continue
		}
		loaded++
	}

	if loaded == 0 {
		return fonts.ErrUnknownFamily
	}
	return nil
}

// Families returns the name of every indexed family, sorted.
func (db *FontDB) Families() ([]string, error) {
	rows, err := db.db.Query("SELECT DISTINCT family FROM font ORDER BY family COLLATE NOCASE")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []string
	for rows.Next() {
		var family string
		if err := rows.Scan(&family); err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, rows.Err()
}
