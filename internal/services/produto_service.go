package services

import (
	"log"

	"estoque/internal/models"
	"estoque/internal/repositories"
	"estoque/internal/validation"
)

// ValidationError carries the field -> message map produced when a payload
// fails validation. Handlers render it as the 400 response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "produto validation failed"
}

// Inventory event names published after successful writes.
const (
	EventProdutoCreated = "produto.created"
	EventProdutoUpdated = "produto.updated"
	EventProdutoDeleted = "produto.deleted"
)

// EventPublisher publishes inventory change events. A nil publisher disables
// events entirely.
type EventPublisher interface {
	PublishProdutoEvent(event string, produto *models.Produto) error
}

// ProdutoService handles business logic for the inventory records.
type ProdutoService struct {
	repo      repositories.ProdutoRepository
	validator *validation.ProdutoValidator
	events    EventPublisher
}

// NewProdutoService creates a new ProdutoService. events may be nil.
func NewProdutoService(repo repositories.ProdutoRepository, validator *validation.ProdutoValidator, events EventPublisher) *ProdutoService {
	return &ProdutoService{
		repo:      repo,
		validator: validator,
		events:    events,
	}
}

// GetAllProdutos retrieves all products, newest first.
func (s *ProdutoService) GetAllProdutos() ([]models.Produto, error) {
	return s.repo.GetAll()
}

// GetProdutoByID retrieves a single product by its id.
func (s *ProdutoService) GetProdutoByID(id int) (*models.Produto, error) {
	return s.repo.GetByID(id)
}

// CreateProduto validates the payload and persists a new product. The store
// assigns id and createdAt; an absent data defaults to today. Nothing is
// written when validation fails.
func (s *ProdutoService) CreateProduto(input *models.ProdutoInput) (*models.Produto, error) {
	if errs := s.validator.ValidateProduto(input); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	data, verr := resolveData(input.Data, models.Today())
	if verr != nil {
		return nil, verr
	}

	produto := &models.Produto{
		Nome:       input.Nome,
		Categoria:  input.Categoria,
		Quantidade: *input.Quantidade,
		URLImagem:  input.URLImagem,
		Data:       data,
	}

	if err := s.repo.Create(produto); err != nil {
		return nil, err
	}

	s.publish(EventProdutoCreated, produto)
	return produto, nil
}

// UpdateProduto replaces the mutable fields of an existing product. The
// existence check runs before validation, so an unknown id reports not-found
// regardless of how broken the body is. id and createdAt are immutable; an
// omitted data keeps the stored value.
func (s *ProdutoService) UpdateProduto(id int, input *models.ProdutoInput) (*models.Produto, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateProduto(input); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	data, verr := resolveData(input.Data, existing.Data)
	if verr != nil {
		return nil, verr
	}

	existing.Nome = input.Nome
	existing.Categoria = input.Categoria
	existing.Quantidade = *input.Quantidade
	existing.URLImagem = input.URLImagem
	existing.Data = data

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	s.publish(EventProdutoUpdated, existing)
	return existing, nil
}

// DeleteProduto removes a product by its id. Deleting an already deleted id
// reports not-found, never a store error.
func (s *ProdutoService) DeleteProduto(id int) error {
	produto, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publish(EventProdutoDeleted, produto)
	return nil
}

// resolveData returns the fallback when data was omitted, otherwise parses
// the submitted value. An explicit empty or malformed string is a validation
// failure, never "clear the field".
func resolveData(raw *string, fallback models.Date) (models.Date, *ValidationError) {
	if raw == nil {
		return fallback, nil
	}
	data, err := models.ParseDate(*raw)
	if err != nil {
		return models.Date{}, &ValidationError{Fields: map[string]string{"data": validation.MsgDataInvalida}}
	}
	return data, nil
}

// publish sends an inventory event. The write already committed, so a publish
// failure is logged and never surfaced to the caller.
func (s *ProdutoService) publish(event string, produto *models.Produto) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishProdutoEvent(event, produto); err != nil {
		log.Printf("Failed to publish %s event for produto %d: %v", event, produto.ID, err)
	}
}
