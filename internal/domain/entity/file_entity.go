package entity

import (
	"strings"
	"time"
)

// File is an uploaded object referenced by a user avatar.
type File struct {
	ID        string
	Name      string
	Path      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// URL joins baseURL and the stored object path.
func (f *File) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(f.Path, "/")
}
