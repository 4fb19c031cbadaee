package repository

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateConnection = errors.New("cards are already connected")
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
