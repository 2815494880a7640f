package store

// PostArchive abstracts where generated posts land so the app can swap the
// flat-file store for Postgres without touching the routes.
type PostArchive interface {
	Save(title, summary, source, link, content, method, style string) (GeneratedPost, error)
	All() ([]GeneratedPost, error)
	Recent(limit int) ([]GeneratedPost, error)
	Delete(id string) (bool, error)
}

var _ PostArchive = (*PostStore)(nil)
var _ PostArchive = (*PostgresArchive)(nil)
