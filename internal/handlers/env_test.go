package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mgarrido/tienda/internal/handlers"
	"github.com/mgarrido/tienda/internal/models"
	ordersvc "github.com/mgarrido/tienda/internal/service/orders"
	usersvc "github.com/mgarrido/tienda/internal/service/users"
	httpserver "github.com/mgarrido/tienda/internal/transport/http"
)

// testEnv runs the full app (router, session middleware, templates)
// against an in-memory database, carrying session cookies between
// requests like a browser would.
type testEnv struct {
	t       *testing.T
	e       *echo.Echo
	db      *gorm.DB
	cookies map[string]*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}))

	renderer, err := handlers.NewRenderer("../../web/templates")
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(echosession.Middleware(sessions.NewCookieStore([]byte("test-session-secret"))))

	ordersService := &ordersvc.Service{DB: db}
	httpserver.Register(e, &httpserver.Deps{
		Catalog: &handlers.CatalogHandler{DB: db},
		Auth:    &handlers.AuthHandler{Users: &usersvc.Service{DB: db}},
		Cart:    &handlers.CartHandler{DB: db, Orders: ordersService},
		Orders:  &handlers.OrderHandler{Orders: ordersService},
	})

	return &testEnv{t: t, e: e, db: db, cookies: map[string]*http.Cookie{}}
}

func (env *testEnv) seedProduct(id uint, nombre, precio string) models.Product {
	env.t.Helper()
	p := models.Product{ID: id, Nombre: nombre, Precio: decimal.RequireFromString(precio)}
	require.NoError(env.t, env.db.Create(&p).Error)
	return p
}

func (env *testEnv) request(method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	env.t.Helper()

	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	for _, ck := range env.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(env.cookies, ck.Name)
		} else {
			env.cookies[ck.Name] = ck
		}
	}
	return rec
}

func (env *testEnv) get(target string) *httptest.ResponseRecorder {
	return env.request(http.MethodGet, target, nil, nil)
}

func (env *testEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	return env.request(http.MethodPost, target, strings.NewReader(form.Encode()), map[string]string{
		echo.HeaderContentType: echo.MIMEApplicationForm,
	})
}

func (env *testEnv) postJSON(target string, payload interface{}, header map[string]string) *httptest.ResponseRecorder {
	data, err := json.Marshal(payload)
	require.NoError(env.t, err)
	if header == nil {
		header = map[string]string{}
	}
	header[echo.HeaderContentType] = echo.MIMEApplicationJSON
	return env.request(http.MethodPost, target, bytes.NewReader(data), header)
}

// cartTotals probes the session cart through the update route's JSON
// response mode, using a product id that is never in the cart.
func (env *testEnv) cartTotals() (int, string) {
	rec := env.request(http.MethodPost, "/cart/update/999999", nil, map[string]string{
		"X-Requested-With": "XMLHttpRequest",
	})
	require.Equal(env.t, http.StatusOK, rec.Code)

	var resp struct {
		TotalQty   int    `json:"totalQty"`
		TotalPrice string `json:"totalPrice"`
	}
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.TotalQty, resp.TotalPrice
}

func (env *testEnv) registerAndLogin(nombre, email, password string) {
	env.t.Helper()

	rec := env.postForm("/register", url.Values{
		"nombre":   {nombre},
		"email":    {email},
		"password": {password},
	})
	require.Equal(env.t, http.StatusFound, rec.Code)

	rec = env.postForm("/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(env.t, http.StatusFound, rec.Code)
	require.Equal(env.t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestHandlerPanicBecomes500(t *testing.T) {
	env := newTestEnv(t)
	env.e.GET("/boom", func(echo.Context) error {
		panic("boom")
	})

	rec := env.get("/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
