package routes

import (
	"dummyapi/app/controllers"
	"dummyapi/app/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the dummy API's routes and returns a router.
// Unknown paths get mux's 404 and known paths with another method get its 405.
func SetupRoutes() *mux.Router {
	return SetupRoutesWithController(controllers.NewPostController())
}

// SetupRoutesWithController builds the router around the given controller.
func SetupRoutesWithController(postController *controllers.PostController) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.ContentTypeJSON)

	// Post routes
	router.HandleFunc("/posts", postController.Index).Methods("GET")
	router.HandleFunc("/posts", postController.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Edit).Methods("PUT")
	router.HandleFunc("/posts/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	return router
}
