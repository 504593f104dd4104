package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrDuplicate indica violação de unicidade (nome de marca ou de campanha).
var ErrDuplicate = errors.New("registro duplicado")

const pqUniqueViolation = "23505"

// isUniqueViolation verifica se o erro do driver é violação de constraint de unicidade
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
