package repositories

import (
	"sort"
	"sync"
	"time"

	"estoque/internal/models"
)

// MockProdutoRepository is an in-memory implementation of ProdutoRepository.
type MockProdutoRepository struct {
	produtos map[int]models.Produto
	nextID   int
	mu       sync.RWMutex
}

// NewMockProdutoRepository creates a new instance of MockProdutoRepository.
func NewMockProdutoRepository() *MockProdutoRepository {
	return &MockProdutoRepository{
		produtos: make(map[int]models.Produto),
		nextID:   1,
	}
}

// GetAll returns all products ordered by creation time, newest first.
func (r *MockProdutoRepository) GetAll() ([]models.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	produtoList := make([]models.Produto, 0, len(r.produtos))
	for _, p := range r.produtos {
		produtoList = append(produtoList, p)
	}
	sort.Slice(produtoList, func(i, j int) bool {
		if !produtoList[i].CreatedAt.Equal(produtoList[j].CreatedAt) {
			return produtoList[i].CreatedAt.After(produtoList[j].CreatedAt)
		}
		return produtoList[i].ID > produtoList[j].ID
	})
	return produtoList, nil
}

// GetByID returns a product by its id.
func (r *MockProdutoRepository) GetByID(id int) (*models.Produto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	produto, ok := r.produtos[id]
	if !ok {
		return nil, ErrProdutoNotFound
	}
	return &produto, nil
}

// Create adds a new product, assigning id and created_at like the database
// would.
func (r *MockProdutoRepository) Create(produto *models.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if produto.ID == 0 {
		produto.ID = r.nextID
		r.nextID++
	} else if produto.ID >= r.nextID {
		r.nextID = produto.ID + 1
	}
	if produto.CreatedAt.IsZero() {
		produto.CreatedAt = time.Now()
	}
	r.produtos[produto.ID] = *produto
	return nil
}

// Update modifies an existing product.
func (r *MockProdutoRepository) Update(produto *models.Produto) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.produtos[produto.ID]; !ok {
		return ErrProdutoNotFound
	}
	r.produtos[produto.ID] = *produto
	return nil
}

// Delete removes a product by its id.
func (r *MockProdutoRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.produtos[id]; !ok {
		return ErrProdutoNotFound
	}
	delete(r.produtos, id)
	return nil
}
