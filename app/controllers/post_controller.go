package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"unicode/utf8"

	"dummyapi/app/services"

	"github.com/gorilla/mux"
)

var (
	errEmptyBody   = errors.New("request body is empty")
	errInvalidUTF8 = errors.New("request body is not valid UTF-8")
)

// PostController handles HTTP requests for the dummy posts resource
type PostController struct {
	postService *services.PostService
}

// SetService sets the post service for testing
func (pc *PostController) SetService(service *services.PostService) {
	pc.postService = service
}

// NewPostController creates a new PostController
func NewPostController() *PostController {
	return &PostController{
		postService: services.NewPostService(),
	}
}

// Index returns the canned post listing
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	pc.sendJSON(w, http.StatusOK, pc.postService.ListPosts())
}

// Show returns the canned post for the id in the path
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		// The route only matches digits, so this is an id too large for int64.
		pc.sendError(w, "Not Found", http.StatusNotFound)
		return
	}

	pc.sendJSON(w, http.StatusOK, pc.postService.GetPost(id))
}

// Create echoes the JSON request body with 201 Created
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := readJSON(r)
	if err != nil {
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	pc.sendRaw(w, http.StatusCreated, body)
}

// Edit echoes the JSON request body. The id in the path is not reflected.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	if _, err := postID(r); err != nil {
		pc.sendError(w, "Not Found", http.StatusNotFound)
		return
	}

	body, err := readJSON(r)
	if err != nil {
		pc.sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	pc.sendRaw(w, http.StatusOK, body)
}

// Delete acknowledges the delete with an empty 204 response
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := postID(r); err != nil {
		pc.sendError(w, "Not Found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// readJSON reads the request body and returns it compacted.
// Key order and number literals are kept as sent.
func readJSON(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyBody
	}
	if !utf8.Valid(data) {
		return nil, errInvalidUTF8
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Helper methods for consistent response handling.
// The JSON content type comes from middleware.ContentTypeJSON.

func (pc *PostController) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (pc *PostController) sendRaw(w http.ResponseWriter, status int, body []byte) {
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	pc.sendJSON(w, status, map[string]string{"error": message})
}
