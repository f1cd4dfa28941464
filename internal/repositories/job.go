package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"placementprime/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindByUser(userID uuid.UUID) ([]models.Job, error)
	FindRecent(limit int) ([]models.Job, error)
	Update(id uuid.UUID, fields map[string]interface{}) (*models.Job, error)
	Count() (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindByUser implements JobRepository.
func (r *jobRepository) FindByUser(userID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, nil
}

// FindRecent implements JobRepository.
func (r *jobRepository) FindRecent(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}

	return jobs, nil
}

// Update applies a partial field update. Field names are column names;
// callers validate values before they reach the store.
func (r *jobRepository) Update(id uuid.UUID, fields map[string]interface{}) (*models.Job, error) {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update job: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id)
}

// Count implements JobRepository.
func (r *jobRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	return count, nil
}
