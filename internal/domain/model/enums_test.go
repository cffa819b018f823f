package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("USER")
	assert.NoError(t, err)
	assert.Equal(t, RoleUser, r)

	r, err = ParseRole("ADMIN")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.True(t, r.IsAdmin())

	//enum外は全部拒否（小文字も）
	for _, s := range []string{"", "user", "admin", "SUPERUSER", "Admin "} {
		_, err := ParseRole(s)
		assert.ErrorIs(t, err, ErrUnknownRole, "input=%q", s)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PAID", "SHIPPED", "COMPLETED", "CANCELED"} {
		got, ok := ParseOrderStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, OrderStatus(s), got)
	}

	for _, s := range []string{"", "paid", "DELIVERED", "CANCELLED"} {
		_, ok := ParseOrderStatus(s)
		assert.False(t, ok, s)
	}
}
