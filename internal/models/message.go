package models

import "time"

// Message is one "recado" on the mural. Wire names match the original API.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Author    string    `gorm:"column:autor" json:"autor"`
	Content   string    `gorm:"column:mensagem" json:"mensagem"`
	CreatedAt time.Time `gorm:"column:data_criacao" json:"data_criacao"`
}

// TableName keeps the table name the original schema used.
func (Message) TableName() string {
	return "recados"
}

// MessageSubmission is the POST /recados request body.
type MessageSubmission struct {
	Author  string `json:"autor"`
	Content string `json:"mensagem"`
}
