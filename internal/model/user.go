package model

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}
