package repositories

import (
	"errors"

	"estoque/internal/models"
)

// ErrProdutoNotFound is returned when no row matches the requested id.
// Callers distinguish it with errors.Is to map it onto a 404.
var ErrProdutoNotFound = errors.New("produto não encontrado")

// ProdutoRepository defines the interface for product data access.
type ProdutoRepository interface {
	// GetAll returns every product ordered by creation time, newest first.
	GetAll() ([]models.Produto, error)
	GetByID(id int) (*models.Produto, error)
	Create(produto *models.Produto) error
	Update(produto *models.Produto) error
	Delete(id int) error
}
