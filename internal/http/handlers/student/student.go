// Package student contains the HTTP handlers for the student resource.
//
// Each exported function is a factory: it receives the store once, when the
// route is registered, and returns the http.HandlerFunc the router calls on
// every request.
//
//	router.HandleFunc("POST /api/students", student.New(store))
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-desk/internal/storage"
	"github.com/aanand-mishra/student-desk/internal/types"
	"github.com/aanand-mishra/student-desk/internal/utils/response"
)

// Register mounts every student route on router.
//
//	POST   /api/students        create
//	GET    /api/students        list all
//	GET    /api/students/{id}   get one
//	PUT    /api/students/{id}   update
//	DELETE /api/students/{id}   delete
func Register(router *http.ServeMux, store storage.Storage) {
	router.HandleFunc("POST /api/students", New(store))
	router.HandleFunc("GET /api/students", GetList(store))
	router.HandleFunc("GET /api/students/{id}", GetByID(store))
	router.HandleFunc("PUT /api/students/{id}", Update(store))
	router.HandleFunc("DELETE /api/students/{id}", Delete(store))
}

// New handles POST /api/students.
//
//	{ "name": "Ann", "email": "ann@x.com", "course": "CS101" }  →  201 { "id": 1 }
//
// 400 for an empty or malformed body or a missing name/email, 500 when the
// store fails.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}

		lastID, err := store.CreateStudent(r.Context(), student.Name, student.Email, student.Course)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))
		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

// GetByID handles GET /api/students/{id}. 404 when no row has that id.
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		student, err := store.GetStudentByID(r.Context(), intID)
		if err != nil {
			writeStoreError(w, "error getting student", id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students. An empty table gives [] rather than
// null.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.GetStudents(r.Context())
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Update handles PUT /api/students/{id} and returns the stored row.
//
// The store treats an unknown id as a no-op, so the re-fetch that follows
// is what turns that case into a 404.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		student, ok := decodeStudent(w, r)
		if !ok {
			return
		}
		// The path decides which row; any id in the body is ignored.
		student.ID = intID

		if err := store.UpdateStudent(r.Context(), student); err != nil {
			writeStoreError(w, "error updating student", id, err)
			return
		}

		updated, err := store.GetStudentByID(r.Context(), intID)
		if err != nil {
			writeStoreError(w, "error reading updated student", id, err)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}. Deleting an unknown id
// succeeds: the row is gone either way.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		if err := store.DeleteStudent(r.Context(), intID); err != nil {
			writeStoreError(w, "error deleting student", id, err)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// decodeStudent reads and validates the JSON body. On failure it has
// already written the 400 response.
func decodeStudent(w http.ResponseWriter, r *http.Request) (types.Student, bool) {
	var student types.Student

	err := json.NewDecoder(r.Body).Decode(&student)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return student, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return student, false
	}

	if err := validator.New().Struct(student); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return student, false
	}

	return student, true
}

func parseID(w http.ResponseWriter, id string) (int64, bool) {
	intID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return intID, true
}

func writeStoreError(w http.ResponseWriter, msg, id string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
		return
	}

	slog.Error(msg, slog.String("id", id), slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
