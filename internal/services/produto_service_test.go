package services_test

import (
	"errors"
	"testing"
	"time"

	"estoque/internal/models"
	"estoque/internal/repositories"
	"estoque/internal/services"
	"estoque/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProdutoRepository is a mock implementation of repositories.ProdutoRepository
type MockProdutoRepository struct {
	mock.Mock
}

func (m *MockProdutoRepository) GetAll() ([]models.Produto, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Produto), args.Error(1)
}

func (m *MockProdutoRepository) GetByID(id int) (*models.Produto, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Produto), args.Error(1)
}

func (m *MockProdutoRepository) Create(produto *models.Produto) error {
	args := m.Called(produto)
	return args.Error(0)
}

func (m *MockProdutoRepository) Update(produto *models.Produto) error {
	args := m.Called(produto)
	return args.Error(0)
}

func (m *MockProdutoRepository) Delete(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProdutoEvent(event string, produto *models.Produto) error {
	args := m.Called(event, produto)
	return args.Error(0)
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func validInput() *models.ProdutoInput {
	return &models.ProdutoInput{
		Nome:       "Arroz",
		Categoria:  "Grãos",
		Quantidade: intPtr(10),
		URLImagem:  "https://x.test/a.png",
	}
}

func newService(repo repositories.ProdutoRepository, events services.EventPublisher) *services.ProdutoService {
	return services.NewProdutoService(repo, validation.NewProdutoValidator(), events)
}

func TestProdutoService_GetAllProdutos(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	expected := []models.Produto{
		{ID: 2, Nome: "Feijão", Categoria: "Grãos", Quantidade: 5},
		{ID: 1, Nome: "Arroz", Categoria: "Grãos", Quantidade: 10},
	}

	mockRepo.On("GetAll").Return(expected, nil).Once()

	produtos, err := service.GetAllProdutos()
	assert.NoError(t, err)
	assert.Equal(t, expected, produtos)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetAll").Return(nil, errors.New("database error")).Once()
	_, err = service.GetAllProdutos()
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProdutoService_CreateProduto(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.AnythingOfType("*models.Produto")).Run(func(args mock.Arguments) {
		produto := args.Get(0).(*models.Produto)
		produto.ID = 1
		produto.CreatedAt = time.Now()
	}).Return(nil).Once()
	mockEvents.On("PublishProdutoEvent", services.EventProdutoCreated, mock.AnythingOfType("*models.Produto")).Return(nil).Once()

	produto, err := service.CreateProduto(validInput())
	assert.NoError(t, err)
	assert.Equal(t, 1, produto.ID)
	assert.Equal(t, "Arroz", produto.Nome)
	assert.Equal(t, 10, produto.Quantidade)
	// Omitted data defaults to today.
	assert.Equal(t, time.Now().UTC().Format(models.DateLayout), produto.Data.Format(models.DateLayout))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProdutoService_CreateProduto_ExplicitData(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	input := validInput()
	input.Data = strPtr("2024-01-15")

	mockRepo.On("Create", mock.AnythingOfType("*models.Produto")).Return(nil).Once()

	produto, err := service.CreateProduto(input)
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-15", produto.Data.Format(models.DateLayout))
	mockRepo.AssertExpectations(t)
}

func TestProdutoService_CreateProduto_ValidationFailure(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	input := validInput()
	input.Quantidade = intPtr(-1)

	produto, err := service.CreateProduto(input)
	assert.Nil(t, produto)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantidade")

	// Nothing reaches the store or the event queue on a failed validation.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockEvents.AssertNotCalled(t, "PublishProdutoEvent", mock.Anything, mock.Anything)
}

// An explicit empty data is a validation failure, not "clear the field".
func TestProdutoService_CreateProduto_EmptyData(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	input := validInput()
	input.Data = strPtr("")

	produto, err := service.CreateProduto(input)
	assert.Nil(t, produto)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, validation.MsgDataInvalida, verr.Fields["data"])
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProdutoService_CreateProduto_StoreFailure(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.AnythingOfType("*models.Produto")).Return(errors.New("database error")).Once()

	produto, err := service.CreateProduto(validInput())
	assert.Nil(t, produto)
	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertNotCalled(t, "PublishProdutoEvent", mock.Anything, mock.Anything)
}

func existingProduto() *models.Produto {
	data, _ := models.ParseDate("2024-01-01")
	return &models.Produto{
		ID:         1,
		Nome:       "Arroz",
		Categoria:  "Grãos",
		Quantidade: 10,
		URLImagem:  "https://x.test/a.png",
		Data:       data,
		CreatedAt:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestProdutoService_UpdateProduto(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	existing := existingProduto()
	createdAt := existing.CreatedAt

	input := validInput()
	input.Nome = "Arroz Integral"
	input.Quantidade = intPtr(3)

	mockRepo.On("GetByID", 1).Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Produto")).Return(nil).Once()
	mockEvents.On("PublishProdutoEvent", services.EventProdutoUpdated, mock.AnythingOfType("*models.Produto")).Return(nil).Once()

	produto, err := service.UpdateProduto(1, input)
	assert.NoError(t, err)
	assert.Equal(t, 1, produto.ID)
	assert.Equal(t, "Arroz Integral", produto.Nome)
	assert.Equal(t, 3, produto.Quantidade)
	// id and createdAt are immutable; omitted data keeps the stored value.
	assert.Equal(t, createdAt, produto.CreatedAt)
	assert.Equal(t, "2024-01-01", produto.Data.Format(models.DateLayout))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProdutoService_UpdateProduto_ReplacesData(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	input := validInput()
	input.Data = strPtr("2024-06-30")

	mockRepo.On("GetByID", 1).Return(existingProduto(), nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Produto")).Return(nil).Once()

	produto, err := service.UpdateProduto(1, input)
	assert.NoError(t, err)
	assert.Equal(t, "2024-06-30", produto.Data.Format(models.DateLayout))
	mockRepo.AssertExpectations(t)
}

// The existence check runs before validation: an unknown id reports not-found
// even when the payload is completely broken.
func TestProdutoService_UpdateProduto_NotFoundBeforeValidation(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	badInput := &models.ProdutoInput{Nome: "", Quantidade: intPtr(-5), URLImagem: "ftp://x"}

	mockRepo.On("GetByID", 99).Return(nil, repositories.ErrProdutoNotFound).Once()

	produto, err := service.UpdateProduto(99, badInput)
	assert.Nil(t, produto)
	assert.ErrorIs(t, err, repositories.ErrProdutoNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProdutoService_UpdateProduto_ValidationFailure(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	input := validInput()
	input.URLImagem = "ftp://x"

	mockRepo.On("GetByID", 1).Return(existingProduto(), nil).Once()

	produto, err := service.UpdateProduto(1, input)
	assert.Nil(t, produto)

	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "urlImagem")
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProdutoService_DeleteProduto(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	mockRepo.On("GetByID", 1).Return(existingProduto(), nil).Once()
	mockRepo.On("Delete", 1).Return(nil).Once()
	mockEvents.On("PublishProdutoEvent", services.EventProdutoDeleted, mock.AnythingOfType("*models.Produto")).Return(nil).Once()

	assert.NoError(t, service.DeleteProduto(1))
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestProdutoService_DeleteProduto_NotFound(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	service := newService(mockRepo, nil)

	mockRepo.On("GetByID", 99).Return(nil, repositories.ErrProdutoNotFound).Once()

	err := service.DeleteProduto(99)
	assert.ErrorIs(t, err, repositories.ErrProdutoNotFound)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

// A publish failure never bubbles up: the write already committed.
func TestProdutoService_PublishFailureIsSwallowed(t *testing.T) {
	mockRepo := new(MockProdutoRepository)
	mockEvents := new(MockEventPublisher)
	service := newService(mockRepo, mockEvents)

	mockRepo.On("Create", mock.AnythingOfType("*models.Produto")).Return(nil).Once()
	mockEvents.On("PublishProdutoEvent", services.EventProdutoCreated, mock.AnythingOfType("*models.Produto")).Return(errors.New("broker down")).Once()

	produto, err := service.CreateProduto(validInput())
	assert.NoError(t, err)
	assert.NotNil(t, produto)
	mockEvents.AssertExpectations(t)
}
