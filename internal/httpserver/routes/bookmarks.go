package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/bookmarkd/internal/httpserver/mw"
)

func init() { Register("bookmarks", registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	create := handlers.CreateBookmark(d)
	r.Post("/", create)
	r.Post("/bookmarks", create)

	r.Get("/bookmarks", handlers.ListBookmarks(d))
	r.Get("/bookmarks/{id}", handlers.GetBookmark(d))
	r.With(mw.BearerAuth(d.APIToken, d.Logger)).Delete("/bookmarks/{id}", handlers.DeleteBookmark(d))
}
