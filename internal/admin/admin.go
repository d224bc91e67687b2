// Package admin implements the bootstrap command that seeds an ADMIN account
// straight into the database, since registration over HTTP needs one already.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/server/models"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type registrar interface {
	Register(ctx context.Context, username, email, password, roleName string) (*models.User, error)
}

// Prompter reads answers from in and writes prompts to out. Passwords are
// read without echo from the terminal behind fd.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewPrompter(in io.Reader, out io.Writer, fd int) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// CreateAdmin asks for the account details and registers an ADMIN user.
func CreateAdmin(ctx context.Context, r registrar, p *Prompter) (*models.User, error) {
	username, err := GetSimpleText(p.in, "Enter user name", p.out)
	if err != nil {
		return nil, err
	}

	email, err := GetSimpleText(p.in, "Enter email", p.out)
	if err != nil {
		return nil, err
	}

	password, err := GetPassword(p.fd, "Enter password", p.out)
	if err != nil {
		return nil, err
	}

	confirm, err := GetPassword(p.fd, "Repeat password", p.out)
	if err != nil {
		return nil, err
	}

	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if err := models.ValidateRegistration(username, email, password); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	user, err := r.Register(ctx, username, email, password, string(models.RoleAdmin))
	if err != nil {
		return nil, fmt.Errorf("error creating admin: %w", err)
	}

	return user, nil
}
