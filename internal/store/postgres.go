package store

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// PostgresArchive stores generated posts in PostgreSQL for deployments that
// outgrow the JSON files. Same contract as PostStore, no migration path
// between the two.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(connectionString string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	archive := &PostgresArchive{db: db}
	if err := archive.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Println("PostgreSQL post archive connected")
	return archive, nil
}

func (a *PostgresArchive) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generated_posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT,
		source TEXT,
		link TEXT,
		generated_content TEXT NOT NULL,
		method VARCHAR(20),
		style_used VARCHAR(50),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		ts DOUBLE PRECISION NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generated_posts_ts ON generated_posts(ts);
	`

	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (a *PostgresArchive) Save(title, summary, source, link, content, method, style string) (GeneratedPost, error) {
	now := time.Now()
	post := GeneratedPost{
		ID:               now.Format(time.RFC3339Nano),
		Title:            title,
		Summary:          summary,
		Source:           source,
		Link:             link,
		GeneratedContent: content,
		Method:           method,
		StyleUsed:        style,
		CreatedAt:        now.Format(time.RFC3339),
		Timestamp:        float64(now.UnixNano()) / 1e9,
	}

	query := `
		INSERT INTO generated_posts (id, title, summary, source, link, generated_content, method, style_used, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := a.db.Exec(query, post.ID, post.Title, post.Summary, post.Source, post.Link,
		post.GeneratedContent, post.Method, post.StyleUsed, post.Timestamp); err != nil {
		return post, fmt.Errorf("failed to save post: %w", err)
	}
	return post, nil
}

func (a *PostgresArchive) All() ([]GeneratedPost, error) {
	return a.query(`
		SELECT id, title, summary, source, link, generated_content, method, style_used, created_at, ts
		FROM generated_posts ORDER BY ts ASC
	`)
}

func (a *PostgresArchive) Recent(limit int) ([]GeneratedPost, error) {
	if limit <= 0 {
		limit = 10
	}
	return a.query(`
		SELECT id, title, summary, source, link, generated_content, method, style_used, created_at, ts
		FROM generated_posts ORDER BY ts DESC LIMIT $1
	`, limit)
}

func (a *PostgresArchive) Delete(id string) (bool, error) {
	result, err := a.db.Exec(`DELETE FROM generated_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (a *PostgresArchive) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *PostgresArchive) query(q string, args ...any) ([]GeneratedPost, error) {
	rows, err := a.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []GeneratedPost
	for rows.Next() {
		var p GeneratedPost
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Source, &p.Link,
			&p.GeneratedContent, &p.Method, &p.StyleUsed, &createdAt, &p.Timestamp); err != nil {
			log.Printf("Error scanning post row: %v", err)
			continue
		}
		p.CreatedAt = createdAt.Format(time.RFC3339)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
