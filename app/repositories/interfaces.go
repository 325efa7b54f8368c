package repositories

import "dummyapi/app/models"

// RunRepository defines the interface for benchmark run storage
type RunRepository interface {
	Create(run *models.Run) error
	GetByID(id int) (*models.Run, error)
	List(limit, offset int) ([]*models.Run, error)
	Delete(id int) error
}
