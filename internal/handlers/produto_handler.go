package handlers

import (
	"errors"
	"log"
	"strconv"

	"estoque/internal/models"
	"estoque/internal/repositories"
	"estoque/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProdutoHandler handles HTTP requests for inventory records.
type ProdutoHandler struct {
	service *services.ProdutoService
}

// NewProdutoHandler creates a new ProdutoHandler.
func NewProdutoHandler(service *services.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Reads are public; mutating
// routes run behind the session gate so an unauthenticated request never
// reaches the handler.
func (h *ProdutoHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	produtoRoutes := router.Group("/produtos")
	produtoRoutes.Get("/", h.HandleList)
	produtoRoutes.Get("/:id", h.HandleGetByID)
	produtoRoutes.Post("/", authRequired, h.HandleCreate)
	produtoRoutes.Put("/:id", authRequired, h.HandleUpdate)
	produtoRoutes.Delete("/:id", authRequired, h.HandleDelete)
}

// HandleList returns every product ordered by creation time, newest first.
func (h *ProdutoHandler) HandleList(c *fiber.Ctx) error {
	produtos, err := h.service.GetAllProdutos()
	if err != nil {
		log.Printf("Error listing produtos: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar produtos",
		})
	}
	return c.JSON(produtos)
}

// HandleGetByID returns a single product.
func (h *ProdutoHandler) HandleGetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	produto, err := h.service.GetProdutoByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProdutoNotFound) {
			return notFound(c)
		}
		log.Printf("Error getting produto %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao buscar produto",
		})
	}
	return c.JSON(produto)
}

// HandleCreate validates and persists a new product.
func (h *ProdutoHandler) HandleCreate(c *fiber.Ctx) error {
	var input models.ProdutoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create produto body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	produto, err := h.service.CreateProduto(&input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Fields,
			})
		}
		log.Printf("Error creating produto: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao criar produto",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(produto)
}

// HandleUpdate replaces the mutable fields of an existing product. The check
// order is fixed: session gate, id parsing, existence, then validation.
func (h *ProdutoHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	var input models.ProdutoInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update produto body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Corpo da requisição inválido",
		})
	}

	produto, err := h.service.UpdateProduto(id, &input)
	if err != nil {
		if errors.Is(err, repositories.ErrProdutoNotFound) {
			return notFound(c)
		}
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Fields,
			})
		}
		log.Printf("Error updating produto %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao atualizar produto",
		})
	}

	return c.JSON(produto)
}

// HandleDelete removes a product.
func (h *ProdutoHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.service.DeleteProduto(id); err != nil {
		if errors.Is(err, repositories.ErrProdutoNotFound) {
			return notFound(c)
		}
		log.Printf("Error deleting produto %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Erro ao excluir produto",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func parseID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "ID inválido",
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Produto não encontrado",
	})
}
