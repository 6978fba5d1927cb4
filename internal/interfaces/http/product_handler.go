package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-sync/internal/application/dto"
	"github.com/jhoicas/Estoque-sync/internal/application/estoque"
)

// ProductHandler maneja las peticiones HTTP para produtos (protegido).
// Las lecturas salen de la cache; las escrituras van al servidor y fuerzan reload.
type ProductHandler struct {
	svc *estoque.Service
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *estoque.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary      Listar produtos (cache)
// @Tags         produtos
// @Produce      json
// @Param        marca  query  string  false  "Marca o TODAS"  default(TODAS)
// @Param        busca  query  string  false  "Busca em código, modelo, marca e descrição"
// @Success      200    {object}  dto.ProductListResponse
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	marca := c.Query("marca", estoque.AllBrands)
	busca := c.Query("busca")
	items := dto.FromProducts(h.svc.Filter(marca, busca))
	return c.JSON(dto.ProductListResponse{Items: items, Marca: marca, Busca: busca, Total: len(items)})
}

// GetByID godoc
// @Summary      Obtener produto por ID
// @Tags         produtos
// @Produce      json
// @Param        id   path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, ok := h.svc.FindByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
	}
	return c.JSON(dto.FromProduct(p))
}

// Brands godoc
// @Summary      Marcas disponíveis
// @Tags         produtos
// @Produce      json
// @Success      200  {object}  dto.BrandListResponse
// @Router       /api/marcas [get]
func (h *ProductHandler) Brands(c *fiber.Ctx) error {
	return c.JSON(dto.BrandListResponse{Marcas: h.svc.Brands()})
}

// Create godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.svc.CreateProduct(c.UserContext(), in.Fields())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromProduct(*p))
}

// Update godoc
// @Summary      Atualizar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.ProductRequest  true  "Dados do produto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.svc.UpdateProduct(c.UserContext(), c.Params("id"), in.Fields())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromProduct(*p))
}

// Delete godoc
// @Summary      Excluir produto
// @Tags         produtos
// @Param        id   path  string  true  "ID do produto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
