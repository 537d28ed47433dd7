package repository

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Repository bundles the per-entity repositories over one shared pool.
// The pool is owned by the process entry point and injected here.
type Repository struct {
	Blog     *BlogRepo
	Category *CategoryRepo
	Author   *AuthorRepo
	User     *UserRepo
}

func NewRepository(db *pgxpool.Pool, stmtTimeout time.Duration) *Repository {
	return &Repository{
		Blog:     NewBlogRepository(db, stmtTimeout),
		Category: NewCategoryRepository(db, stmtTimeout),
		Author:   NewAuthorRepository(db, stmtTimeout),
		User:     NewUserRepository(db, stmtTimeout),
	}
}
