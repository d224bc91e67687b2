package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"secretary", RoleSecretary, true},
		{" User ", RoleUser, true},
		{"ROLE_ADMIN", "", false},
		{"", "", false},
		{"superuser", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestRoles_AreValid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("GUEST").IsValid())
}

func TestItemStatus_IsValid(t *testing.T) {
	assert.True(t, ItemStatusAvailable.IsValid())
	assert.True(t, ItemStatusClaimed.IsValid())
	assert.False(t, ItemStatus("LOST").IsValid())
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, (&Page{Size: 20}).TotalPages())
	assert.Equal(t, 1, (&Page{Size: 20, TotalElements: 20}).TotalPages())
	assert.Equal(t, 2, (&Page{Size: 20, TotalElements: 21}).TotalPages())
	assert.Equal(t, 0, (&Page{Size: 0, TotalElements: 5}).TotalPages())
}
