package admin

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	err  error
	args []string
}

func (f *fakeRegistrar) Register(_ context.Context, username, email, password, roleName string) (*models.User, error) {
	f.args = []string{username, email, password, roleName}
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{UserName: username, Email: email, Role: models.Role(roleName)}, nil
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestCreateAdmin(t *testing.T) {
	stubPasswords(t, "s3cret!", "s3cret!")
	var out bytes.Buffer
	r := &fakeRegistrar{}

	u, err := CreateAdmin(context.Background(), r, NewPrompter(strings.NewReader("root\nroot@example.com\n"), &out, 0))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, []string{"root", "root@example.com", "s3cret!", "ADMIN"}, r.args)
	assert.Contains(t, out.String(), "Enter email")
}

func TestCreateAdmin_PasswordMismatch(t *testing.T) {
	stubPasswords(t, "one", "two")
	r := &fakeRegistrar{}

	_, err := CreateAdmin(context.Background(), r, NewPrompter(strings.NewReader("root\nroot@example.com\n"), &bytes.Buffer{}, 0))
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Nil(t, r.args)
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	stubPasswords(t, "s3cret!", "s3cret!")
	r := &fakeRegistrar{err: common.ErrDuplicateUser}

	_, err := CreateAdmin(context.Background(), r, NewPrompter(strings.NewReader("root\nroot@example.com\n"), &bytes.Buffer{}, 0))
	assert.ErrorIs(t, err, common.ErrDuplicateUser)
}

func TestCreateAdmin_InvalidFields(t *testing.T) {
	cases := []struct {
		input    string
		password string
	}{
		{"\nroot@example.com\n", "s3cret!"},
		{"root\nroot-at-example\n", "s3cret!"},
		{"root\nroot@example.com\n", "abc"},
		{"root\nroot@example.com\n", strings.Repeat("é", 40)},
	}
	for _, tc := range cases {
		stubPasswords(t, tc.password, tc.password)
		r := &fakeRegistrar{}

		_, err := CreateAdmin(context.Background(), r, NewPrompter(strings.NewReader(tc.input), &bytes.Buffer{}, 0))
		assert.ErrorIs(t, err, common.ErrorValidation, tc.input)
		assert.Nil(t, r.args, "invalid input must not reach registration")
	}
}

func TestCreateAdmin_InputExhausted(t *testing.T) {
	stubPasswords(t)

	_, err := CreateAdmin(context.Background(), &fakeRegistrar{}, NewPrompter(strings.NewReader(""), &bytes.Buffer{}, 0))
	assert.Error(t, err)
}

func TestGetSimpleText_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader("lastline"), &bytes.Buffer{}, 0)
	got, err := GetSimpleText(p.in, "Name?", p.out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }

	_, err := GetPassword(0, "Enter password", &bytes.Buffer{})
	assert.Error(t, err)
}
