package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationNormalizesInput(t *testing.T) {
	p := NewPagination(0, -5, "created_at", true)

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
}

func TestPaginationOffsetAndLimit(t *testing.T) {
	p := NewPagination(3, 20, "", false)

	assert.Equal(t, 40, p.GetOffset())
	assert.Equal(t, 20, p.GetLimit())
}

func TestPaginationSetTotal(t *testing.T) {
	p := NewPagination(2, 10, "", false)
	p.SetTotal(25)

	assert.Equal(t, int64(25), p.TotalItems)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
