package validation

import (
	"reflect"
	"strings"

	"estoque/internal/models"

	"github.com/go-playground/validator/v10"
)

// Field messages of the public contract.
const (
	MsgNomeObrigatorio      = "Nome é obrigatório"
	MsgCategoriaObrigatoria = "Categoria é obrigatória"
	MsgQuantidadeInvalida   = "Quantidade deve ser um número positivo"
	MsgURLImagemInvalida    = "URL da imagem inválida"
	MsgDataInvalida         = "Data inválida"
)

// ProdutoValidator checks raw product payloads. All field rules run
// independently so a single bad payload reports every failure at once.
type ProdutoValidator struct {
	validate *validator.Validate
}

// NewProdutoValidator creates a ProdutoValidator with the custom rules
// registered.
func NewProdutoValidator() *ProdutoValidator {
	v := validator.New()

	// Report fields by their json name so error maps match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("imageurl", imageURL)
	_ = v.RegisterValidation("dateonly", dateOnly)

	return &ProdutoValidator{validate: v}
}

// ValidateProduto returns nil when the payload is safe to persist as-is,
// otherwise a field -> message map covering every failed rule.
func (pv *ProdutoValidator) ValidateProduto(input *models.ProdutoInput) map[string]string {
	err := pv.validate.Struct(input)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError only happens for non-struct input.
		return map[string]string{"_": err.Error()}
	}

	messages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		messages[e.Field()] = messageFor(e.Field())
	}
	return messages
}

func messageFor(field string) string {
	switch field {
	case "nome":
		return MsgNomeObrigatorio
	case "categoria":
		return MsgCategoriaObrigatoria
	case "quantidade":
		return MsgQuantidadeInvalida
	case "urlImagem":
		return MsgURLImagemInvalida
	case "data":
		return MsgDataInvalida
	default:
		return "Campo inválido"
	}
}

// notBlank rejects empty and whitespace-only strings.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// imageURL requires an absolute http(s) URL with a non-empty remainder.
func imageURL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, prefix := range []string{"http://", "https://"} {
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return true
		}
	}
	return false
}

// dateonly requires the "YYYY-MM-DD" calendar date form. An explicit empty
// string fails here; omitempty on the field handles true absence.
func dateOnly(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}
