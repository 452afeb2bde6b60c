package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant/config"
	"restaurant/domain/user"
	"restaurant/infrastructure/auth"
	"restaurant/infrastructure/cache"
	"restaurant/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    int             `json:"code"`
}

type APISuite struct {
	suite.Suite

	restore    func()
	repos      *Repositories
	engine     *gin.Engine
	adminToken string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.restore = logger.Replace(zap.NewNop())

	cfg, err := config.Load("")
	s.Require().NoError(err)
	cfg.App.Env = "test"
	cfg.Server.RateLimit.Enabled = false
	cfg.Auth.BcryptCost = 4
	cfg.Storage.UploadDir = s.T().TempDir()

	s.repos = NewMemoryRepositories()
	app, err := NewBuilder(cfg).
		WithRepositories(s.repos).
		WithStore(cache.NewMemoryStore()).
		WithMetricsRegistry(prometheus.NewRegistry()).
		WithoutLoggerInit().
		Build(context.Background())
	s.Require().NoError(err)
	s.engine = app.GetServer()

	admin, err := user.NewUser(user.Registration{
		Name:     "Admin",
		Email:    "admin@example.com",
		Phone:    "0900000001",
		Password: "Adm1nPass!",
		Role:     "admin",
	}, auth.NewBcryptHasher(4))
	s.Require().NoError(err)
	s.Require().NoError(s.repos.Users.Save(context.Background(), admin))
	s.adminToken = s.login("admin@example.com", "Adm1nPass!")
}

func (s *APISuite) TearDownTest() {
	s.restore()
}

func (s *APISuite) do(method, path, token string, body any) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (s *APISuite) decode(raw json.RawMessage, v any) {
	s.Require().NoError(json.Unmarshal(raw, v), string(raw))
}

func (s *APISuite) login(email, password string) string {
	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, code, env.Error)
	var data struct {
		AccessToken string `json:"accessToken"`
	}
	s.decode(env.Data, &data)
	return data.AccessToken
}

// registerCustomer 返回用户 ID 和令牌
func (s *APISuite) registerCustomer(email, phone string) (string, string) {
	code, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":        "Customer",
		"email":       email,
		"phoneNumber": phone,
		"password":    "Passw0rd!",
	})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var created struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	s.decode(env.Data, &created)
	s.Equal("user", created.Role)
	return created.ID, s.login(email, "Passw0rd!")
}

func (s *APISuite) createProduct(name string, price int64) string {
	code, env := s.do(http.MethodPost, "/api/v1/products", s.adminToken, gin.H{"name": name, "price": price})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var p struct {
		ID string `json:"id"`
	}
	s.decode(env.Data, &p)
	return p.ID
}

func (s *APISuite) TestHealth() {
	code, _ := s.do(http.MethodGet, "/api/v1/health/live", "", nil)
	s.Equal(http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/v1/health/ready", "", nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestCheckoutFlow() {
	userID, token := s.registerCustomer("lan@example.com", "0901234567")
	pho := s.createProduct("Pho", 500)
	tea := s.createProduct("Tra da", 300)

	cartItems := "/api/v1/users/" + userID + "/cart/items"
	code, env := s.do(http.MethodPost, cartItems, token, gin.H{"productId": pho, "quantity": 2})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	code, _ = s.do(http.MethodPost, cartItems, token, gin.H{"productId": tea, "quantity": 1})
	s.Require().Equal(http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, cartItems, token, gin.H{"productId": tea, "quantity": 1})
	s.Equal(http.StatusOK, code)

	code, env = s.do(http.MethodPost, "/api/v1/users/"+userID+"/cart/checkout", token, nil)
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var checkout struct {
		OrderID string `json:"orderId"`
		Total   string `json:"total"`
	}
	s.decode(env.Data, &checkout)
	s.Equal("1600", checkout.Total)

	code, env = s.do(http.MethodGet, "/api/v1/orders/"+checkout.OrderID, token, nil)
	s.Require().Equal(http.StatusOK, code, env.Error)
	var order struct {
		Status       string `json:"status"`
		OrderDetails []struct {
			Quantity int `json:"quantity"`
		} `json:"orderDetails"`
	}
	s.decode(env.Data, &order)
	s.Equal("CREATED", order.Status)
	s.Len(order.OrderDetails, 2)

	// 顾客不能推进订单状态
	code, _ = s.do(http.MethodPatch, "/api/v1/orders/"+checkout.OrderID, token, gin.H{"status": "READY"})
	s.Equal(http.StatusForbidden, code)

	code, env = s.do(http.MethodPatch, "/api/v1/orders/"+checkout.OrderID, s.adminToken, gin.H{"status": "READY"})
	s.Require().Equal(http.StatusOK, code, env.Error)

	code, _ = s.do(http.MethodPatch, "/api/v1/orders/"+checkout.OrderID, s.adminToken, gin.H{"status": "CREATED"})
	s.Equal(http.StatusUnprocessableEntity, code)

	code, _ = s.do(http.MethodPatch, "/api/v1/orders/"+checkout.OrderID, s.adminToken, gin.H{"status": "LOST"})
	s.Equal(http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/notifications", token, nil)
	s.Require().Equal(http.StatusOK, code, env.Error)
	var notes []struct {
		Type string `json:"type"`
	}
	s.decode(env.Data, &notes)
	s.Require().Len(notes, 1)
	s.Equal("ORDER_READY", notes[0].Type)

	code, env = s.do(http.MethodGet, "/api/v1/users/"+userID+"/cart", token, nil)
	s.Require().Equal(http.StatusOK, code, env.Error)
	var cart struct {
		Items []any `json:"items"`
	}
	s.decode(env.Data, &cart)
	s.Empty(cart.Items)
}

func (s *APISuite) TestEmptyCheckoutRejected() {
	userID, token := s.registerCustomer("lan@example.com", "0901234567")
	code, env := s.do(http.MethodPost, "/api/v1/users/"+userID+"/cart/checkout", token, nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("CART_EMPTY", env.Error)
}

func (s *APISuite) TestAddItemRequiresPositiveQuantity() {
	userID, token := s.registerCustomer("lan@example.com", "0901234567")
	pho := s.createProduct("Pho", 500)
	cartItems := "/api/v1/users/" + userID + "/cart/items"

	for _, body := range []gin.H{
		{"productId": pho},
		{"productId": pho, "quantity": 0},
		{"productId": pho, "quantity": -2},
		{"productId": pho, "quantity": 1000},
	} {
		code, _ := s.do(http.MethodPost, cartItems, token, body)
		s.Equal(http.StatusBadRequest, code, body)
	}

	code, env := s.do(http.MethodGet, "/api/v1/users/"+userID+"/cart", token, nil)
	s.Require().Equal(http.StatusOK, code, env.Error)
	var cart struct {
		Items []any `json:"items"`
	}
	s.decode(env.Data, &cart)
	s.Empty(cart.Items)
}

func (s *APISuite) TestRemoveLinesReturnsNoContent() {
	userID, token := s.registerCustomer("lan@example.com", "0901234567")
	pho := s.createProduct("Pho", 500)

	code, env := s.do(http.MethodPost, "/api/v1/users/"+userID+"/cart/items", token, gin.H{"productId": pho, "quantity": 1})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var line struct {
		ID string `json:"id"`
	}
	s.decode(env.Data, &line)

	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID+"/cart/items/"+line.ID, token, nil)
	s.Equal(http.StatusNoContent, code)
	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID+"/cart/items/"+line.ID, token, nil)
	s.Equal(http.StatusNotFound, code)

	code, env = s.do(http.MethodPost, "/api/v1/users/"+userID+"/favourites", token, gin.H{"productId": pho})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var favourite struct {
		FavouriteDetailID string `json:"favouriteDetailId"`
	}
	s.decode(env.Data, &favourite)
	s.Require().NotEmpty(favourite.FavouriteDetailID)

	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID+"/favourites/"+favourite.FavouriteDetailID, token, nil)
	s.Equal(http.StatusNoContent, code)
	code, _ = s.do(http.MethodDelete, "/api/v1/users/"+userID+"/favourites/"+favourite.FavouriteDetailID, token, nil)
	s.Equal(http.StatusNotFound, code)
}

func (s *APISuite) TestCartIsPrivate() {
	aliceID, _ := s.registerCustomer("alice@example.com", "0901234567")
	_, bobToken := s.registerCustomer("bob@example.com", "0907654321")

	code, _ := s.do(http.MethodGet, "/api/v1/users/"+aliceID+"/cart", bobToken, nil)
	s.Equal(http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, "/api/v1/users/"+aliceID+"/cart", "", nil)
	s.Equal(http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/api/v1/users/"+aliceID+"/cart", s.adminToken, nil)
	s.Equal(http.StatusOK, code)
}

func (s *APISuite) TestCatalogIsPublicAndCached() {
	_, token := s.registerCustomer("lan@example.com", "0901234567")
	code, _ := s.do(http.MethodPost, "/api/v1/products", token, gin.H{"name": "Pho", "price": 500})
	s.Equal(http.StatusForbidden, code)

	id := s.createProduct("Pho", 500)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("MISS", w.Header().Get("X-Cache"))

	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/"+id, nil))
	s.Equal("HIT", w.Header().Get("X-Cache"))

	code, _ = s.do(http.MethodPatch, "/api/v1/products/"+id, s.adminToken, gin.H{"price": 650})
	s.Require().Equal(http.StatusOK, code)

	code, env := s.do(http.MethodGet, "/api/v1/products/"+id, "", nil)
	s.Require().Equal(http.StatusOK, code)
	var p struct {
		Price int64 `json:"price"`
	}
	s.decode(env.Data, &p)
	s.Equal(int64(650), p.Price)

	code, env = s.do(http.MethodGet, "/api/v1/products/missing", "", nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("PRODUCT_NOT_FOUND", env.Error)
}

func (s *APISuite) TestDuplicateRegistration() {
	s.registerCustomer("lan@example.com", "0901234567")
	code, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":        "Again",
		"email":       "lan@example.com",
		"phoneNumber": "0907777777",
		"password":    "Passw0rd!",
	})
	s.Equal(http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "lan@example.com", "password": "nope"})
	s.Equal(http.StatusUnauthorized, code)
}

func (s *APISuite) TestBookingConfirmation() {
	userID, token := s.registerCustomer("lan@example.com", "0901234567")

	code, env := s.do(http.MethodPost, "/api/v1/bookings", token, gin.H{
		"numberOfPeople": 4,
		"bookedAt":       "2030-01-01T19:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, code, env.Error)
	var b struct {
		ID     string `json:"id"`
		UserID string `json:"userId"`
		Status string `json:"status"`
	}
	s.decode(env.Data, &b)
	s.Equal(userID, b.UserID)
	s.Equal("PENDING", b.Status)

	code, _ = s.do(http.MethodPatch, "/api/v1/bookings/"+b.ID, s.adminToken, gin.H{"status": "COMPLETED"})
	s.Equal(http.StatusUnprocessableEntity, code)

	code, env = s.do(http.MethodPatch, "/api/v1/bookings/"+b.ID, s.adminToken, gin.H{"status": "CONFIRMED"})
	s.Require().Equal(http.StatusOK, code, env.Error)

	code, env = s.do(http.MethodGet, "/api/v1/notifications", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var notes []struct {
		Type string `json:"type"`
	}
	s.decode(env.Data, &notes)
	s.Require().Len(notes, 1)
	s.Equal("RESERVATION_CONFIRMED", notes[0].Type)
}

func (s *APISuite) TestContactForm() {
	code, env := s.do(http.MethodPost, "/api/v1/contacts", "", gin.H{
		"name":    "Guest",
		"email":   "guest@example.com",
		"subject": "Opening hours",
		"message": "Are you open on Tet?",
	})
	s.Require().Equal(http.StatusCreated, code, env.Error)

	code, _ = s.do(http.MethodGet, "/api/v1/contacts", "", nil)
	s.Equal(http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/api/v1/contacts", s.adminToken, nil)
	s.Equal(http.StatusOK, code)
}
