package models

import "time"

// Produto represents a single inventory record.
type Produto struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Nome       string    `json:"nome" gorm:"type:varchar(255);not null"`
	Categoria  string    `json:"categoria" gorm:"type:varchar(255);not null"`
	Quantidade int       `json:"quantidade" gorm:"not null"`
	URLImagem  string    `json:"urlImagem" gorm:"column:url_imagem;type:varchar(2048);not null"`
	Data       Date      `json:"data" gorm:"type:date;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index;autoCreateTime"`
}

// TableName keeps the table name aligned with the public contract.
func (Produto) TableName() string {
	return "produtos"
}

// ProdutoInput is the raw payload accepted by the create and update
// operations. Quantidade and Data are pointers so that an absent field can be
// told apart from a zero value: a missing quantidade is a validation failure,
// a missing data means "default to today" on create and "keep the stored
// value" on update.
type ProdutoInput struct {
	Nome       string  `json:"nome" validate:"notblank"`
	Categoria  string  `json:"categoria" validate:"notblank"`
	Quantidade *int    `json:"quantidade" validate:"required,gte=0"`
	URLImagem  string  `json:"urlImagem" validate:"imageurl"`
	Data       *string `json:"data" validate:"omitempty,dateonly"`
}
