package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "venues_name_active_uidx" (SQLSTATE 23505)`)
	assert.True(t, isDuplicateKey(dup))

	assert.False(t, isDuplicateKey(errors.New("connection refused")))
}
