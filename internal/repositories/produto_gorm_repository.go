package repositories

import (
	"errors"
	"fmt"

	"estoque/internal/models"

	"gorm.io/gorm"
)

// GORMProdutoRepository is a GORM implementation of ProdutoRepository.
type GORMProdutoRepository struct {
	db *gorm.DB
}

// NewGORMProdutoRepository creates a new instance of GORMProdutoRepository.
func NewGORMProdutoRepository(db *gorm.DB) *GORMProdutoRepository {
	return &GORMProdutoRepository{
		db: db,
	}
}

// GetAll retrieves all products, newest first. Ties on created_at fall back
// to descending id so the ordering is total.
func (r *GORMProdutoRepository) GetAll() ([]models.Produto, error) {
	produtos := make([]models.Produto, 0)
	if err := r.db.Order("created_at DESC, id DESC").Find(&produtos).Error; err != nil {
		return nil, fmt.Errorf("failed to list produtos: %w", err)
	}
	return produtos, nil
}

// GetByID retrieves a single product by its id.
func (r *GORMProdutoRepository) GetByID(id int) (*models.Produto, error) {
	var produto models.Produto
	if err := r.db.First(&produto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProdutoNotFound
		}
		return nil, fmt.Errorf("failed to get produto %d: %w", id, err)
	}
	return &produto, nil
}

// Create inserts a new product. The database assigns id and created_at.
func (r *GORMProdutoRepository) Create(produto *models.Produto) error {
	if err := r.db.Create(produto).Error; err != nil {
		return fmt.Errorf("failed to create produto: %w", err)
	}
	return nil
}

// Update saves every field of an existing product.
func (r *GORMProdutoRepository) Update(produto *models.Produto) error {
	res := r.db.Save(produto)
	if res.Error != nil {
		return fmt.Errorf("failed to update produto %d: %w", produto.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a missing row, so we
		// check RowsAffected.
		return ErrProdutoNotFound
	}
	return nil
}

// Delete removes a product by its id. Hard delete, no tombstone.
func (r *GORMProdutoRepository) Delete(id int) error {
	res := r.db.Delete(&models.Produto{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete produto %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProdutoNotFound
	}
	return nil
}
