package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleList and handleListByParam take the plural label used in messages.
func handleList[T any](label string, listFn func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := listFn(r.Context())
		if err != nil {
			writeDomainError(w, r, err, label)
			return
		}
		if items == nil {
			items = []T{}
		}
		respond(w, http.StatusOK, okMsg(label, "retrieved"), items)
	}
}

func handleListByParam[T any](label, param string, listFn func(context.Context, string) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := listFn(r.Context(), chi.URLParam(r, param))
		if err != nil {
			writeDomainError(w, r, err, label)
			return
		}
		if items == nil {
			items = []T{}
		}
		respond(w, http.StatusOK, okMsg(label, "retrieved"), items)
	}
}

func handleGet[T any](subject string, getFn func(context.Context, string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := getFn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, r, err, subject)
			return
		}
		respond(w, http.StatusOK, okMsg(subject, "retrieved"), item)
	}
}

func handleCreate[Req, Res any](subject string, createFn func(context.Context, Req) (Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readJSON[Req](w, r)
		if !ok {
			return
		}
		item, err := createFn(r.Context(), req)
		if err != nil {
			writeDomainError(w, r, err, subject)
			return
		}
		respond(w, http.StatusCreated, okMsg(subject, "created"), item)
	}
}

func handleUpdate[Req, Res any](subject string, updateFn func(context.Context, string, Req) (Res, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := readJSON[Req](w, r)
		if !ok {
			return
		}
		item, err := updateFn(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			writeDomainError(w, r, err, subject)
			return
		}
		respond(w, http.StatusOK, okMsg(subject, "updated"), item)
	}
}

// handleDeactivate serves soft deletes, which return the deactivated entity.
func handleDeactivate[T any](subject string, deleteFn func(context.Context, string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := deleteFn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, r, err, subject)
			return
		}
		respond(w, http.StatusOK, okMsg(subject, "deleted"), item)
	}
}
