package services

import "dummyapi/app/models"

// PostService builds the canned posts served by the dummy API.
// It holds no state; every call returns fresh values.
type PostService struct {
	title string
}

// NewPostService creates a new PostService
func NewPostService() *PostService {
	return &PostService{title: models.HelloWorldTitle}
}

// ListPosts returns the fixed post listing
func (s *PostService) ListPosts() []models.Post {
	return []models.Post{s.GetPost(1)}
}

// GetPost returns the canned post for id
func (s *PostService) GetPost(id int64) models.Post {
	return models.Post{ID: id, Title: s.title}
}
