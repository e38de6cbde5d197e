package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS animes (
	slug            VARCHAR PRIMARY KEY,
	anime_id        BIGINT NOT NULL,
	title           VARCHAR NOT NULL,
	cover_url       VARCHAR,
	summary         VARCHAR,
	genres          VARCHAR,
	release_year    INTEGER,
	default_episode INTEGER,
	episode_count   INTEGER,
	last_episode    INTEGER DEFAULT 0,
	added_at        TIMESTAMP NOT NULL
)`

// InitDuckDB opens the database at path, creating parent directories and
// the schema when missing.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create library dir: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// SaveAnime inserts entry or updates the stored row for its slug. The
// original added_at of an existing row is kept.
func (r *Repository) SaveAnime(entry *LibraryEntry) error {
	genres, err := json.Marshal(entry.Details.Genres)
	if err != nil {
		return err
	}
	addedAt := entry.AddedAt
	if addedAt.IsZero() {
		addedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(`
		INSERT INTO animes (slug, anime_id, title, cover_url, summary, genres, release_year,
			default_episode, episode_count, last_episode, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			anime_id = excluded.anime_id,
			title = excluded.title,
			cover_url = excluded.cover_url,
			summary = excluded.summary,
			genres = excluded.genres,
			release_year = excluded.release_year,
			default_episode = excluded.default_episode,
			episode_count = excluded.episode_count,
			last_episode = excluded.last_episode`,
		entry.Slug,
		entry.Details.ID,
		entry.Details.Title,
		entry.Details.CoverImageURL,
		entry.Details.Summary,
		string(genres),
		entry.Details.ReleaseYear,
		entry.Details.DefaultEpisode,
		entry.Details.EpisodeCount,
		entry.LastEpisode,
		addedAt,
	)
	if err != nil {
		return fmt.Errorf("save anime %s: %w", entry.Slug, err)
	}
	return nil
}

const selectColumns = `slug, anime_id, title, cover_url, summary, genres, release_year,
	default_episode, episode_count, last_episode, added_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*LibraryEntry, error) {
	var (
		entry  LibraryEntry
		cover  sql.NullString
		sum    sql.NullString
		genres sql.NullString
		year   sql.NullInt64
		def    sql.NullInt64
		count  sql.NullInt64
		last   sql.NullInt64
	)
	err := row.Scan(
		&entry.Slug,
		&entry.Details.ID,
		&entry.Details.Title,
		&cover,
		&sum,
		&genres,
		&year,
		&def,
		&count,
		&last,
		&entry.AddedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Details.CoverImageURL = cover.String
	entry.Details.Summary = sum.String
	entry.Details.ReleaseYear = int(year.Int64)
	entry.Details.DefaultEpisode = int(def.Int64)
	entry.Details.EpisodeCount = int(count.Int64)
	entry.LastEpisode = int(last.Int64)
	if genres.Valid && genres.String != "" {
		if err := json.Unmarshal([]byte(genres.String), &entry.Details.Genres); err != nil {
			return nil, fmt.Errorf("decode genres of %s: %w", entry.Slug, err)
		}
	}
	return &entry, nil
}

// GetAnime returns nil without error when slug is not in the library.
func (r *Repository) GetAnime(slug string) (*LibraryEntry, error) {
	row := r.db.QueryRow(`SELECT `+selectColumns+` FROM animes WHERE slug = ?`, slug)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *Repository) ListAnimes() ([]*LibraryEntry, error) {
	rows, err := r.db.Query(`SELECT ` + selectColumns + ` FROM animes ORDER BY title, slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*LibraryEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *Repository) DeleteAnime(slug string) error {
	_, err := r.db.Exec(`DELETE FROM animes WHERE slug = ?`, slug)
	return err
}

// SetLastEpisode records progress. It is a no-op for slugs not in the
// library.
func (r *Repository) SetLastEpisode(slug string, episode int) error {
	_, err := r.db.Exec(`UPDATE animes SET last_episode = ? WHERE slug = ?`, episode, slug)
	return err
}
