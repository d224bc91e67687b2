package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/ufind/internal/common"
	"github.com/dmitrijs2005/ufind/internal/logging"
	"github.com/dmitrijs2005/ufind/internal/server/config"
	"github.com/dmitrijs2005/ufind/internal/server/models"
	"github.com/dmitrijs2005/ufind/internal/server/services"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	sessions map[string]*models.Identity
	authErr  error

	loginToken string
	loginErr   error

	registerErr   error
	registerCalls int
	lastRole      string
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeAuth) Register(_ context.Context, username, email, password, roleName string) (*models.User, error) {
	f.registerCalls++
	f.lastRole = roleName
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{Email: email}, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*models.Identity, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	id, ok := f.sessions[token]
	if !ok {
		return nil, common.ErrTokenMalformed
	}
	return id, nil
}

func (f *fakeAuth) TokenTTL() time.Duration { return time.Hour }

type fakeItems struct {
	items map[string]*models.Item

	lastPage   models.PageRequest
	lastQuery  string
	lastStatus *models.ItemStatus
	registered []models.NewItem
	claims     int
	err        error
}

func (f *fakeItems) page(req models.PageRequest) *models.Page {
	p := &models.Page{Items: []*models.Item{}, Number: req.Number, Size: req.Size}
	for _, it := range f.items {
		p.Items = append(p.Items, it)
	}
	p.TotalElements = int64(len(p.Items))
	return p
}

func (f *fakeItems) List(_ context.Context, req models.PageRequest) (*models.Page, error) {
	f.lastPage = req
	if f.err != nil {
		return nil, f.err
	}
	return f.page(req), nil
}

func (f *fakeItems) Search(_ context.Context, q string, st *models.ItemStatus, req models.PageRequest) (*models.Page, error) {
	f.lastQuery, f.lastStatus, f.lastPage = q, st, req
	return f.page(req), f.err
}

func (f *fakeItems) Get(_ context.Context, id string) (*models.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return it, nil
}

func (f *fakeItems) Register(_ context.Context, in models.NewItem) (*models.Item, error) {
	f.registered = append(f.registered, in)
	return &models.Item{ID: "new"}, f.err
}

func (f *fakeItems) Claim(_ context.Context, id string) (*models.Item, error) {
	f.claims++
	it, ok := f.items[id]
	if !ok {
		return nil, notFound(id)
	}
	it.Status = models.ItemStatusClaimed
	return it, nil
}

type fakeImages struct {
	calls int
}

func (f *fakeImages) RequestUpload(_ context.Context, id string) (*services.ImageUpload, error) {
	f.calls++
	return &services.ImageUpload{Key: "items/2025/05/06/k", URL: "http://s3/put?sig"}, nil
}

func notFound(id string) error {
	return &wrapped{msg: "item not found with id: " + id, err: common.ErrorNotFound}
}

type wrapped struct {
	msg string
	err error
}

func (w *wrapped) Error() string { return w.msg }
func (w *wrapped) Unwrap() error { return w.err }

const (
	adminToken     = "tok-admin"
	secretaryToken = "tok-secretary"
	userToken      = "tok-user"
	itemID         = "0b6c8a38-6f0e-4b55-9a49-5f4d1c2b3a10"
)

type fixture struct {
	srv    *HTTPServer
	auth   *fakeAuth
	items  *fakeItems
	images *fakeImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	auth := &fakeAuth{
		sessions: map[string]*models.Identity{
			adminToken:     {Email: "admin@example.com", Role: models.RoleAdmin},
			secretaryToken: {Email: "sec@example.com", Role: models.RoleSecretary},
			userToken:      {Email: "user@example.com", Role: models.RoleUser},
		},
		loginToken: "fresh-token",
	}
	items := &fakeItems{items: map[string]*models.Item{
		itemID: {
			ID:            itemID,
			Title:         "Umbrella",
			Description:   "Blue",
			DateFound:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			LocationFound: "Library",
			Status:        models.ItemStatusAvailable,
		},
	}}
	images := &fakeImages{}

	return &fixture{
		srv:    NewHTTPServer(cfg, logging.Nop(), auth, items, images),
		auth:   auth,
		items:  items,
		images: images,
	}
}

func (f *fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: common.DefaultCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(w, req)
	return w
}

func tokenCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == common.DefaultCookieName {
			return c
		}
	}
	return nil
}
