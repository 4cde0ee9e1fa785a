package shopController

import (
	"bolt/config"
	"bolt/database"
	"bolt/middleware"
	"bolt/models"
	shopValidator "bolt/validators/shop"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupShop(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:              "test-secret",
		SaltRound:           4,
		AccessTokenTTLMin:   60,
		RefreshTokenTTLDays: 120,
		OTPTTLMin:           10,
	}

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Use(middleware.AuthGate)
	app.Post("/order", shopValidator.Order(), middleware.RequireAuth, CreateOrder)
	app.Get("/order/:id", middleware.RequireAuth, GetOrder)
	app.Put("/order/:id", shopValidator.OrderStatus(), middleware.RequireStaff, UpdateOrderStatus)

	return app, db
}

func shopUser(t *testing.T, db *gorm.DB, email, username string, staff bool) (*models.User, string) {
	t.Helper()

	user := &models.User{Email: email, Username: username, Password: "x", IsStaff: staff, IsActive: true}
	require.NoError(t, db.Create(user).Error)
	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)
	return user, token
}

func shopProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{Name: name, Description: name, Price: price, Stock: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func shopRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	app, db := setupShop(t)
	_, token := shopUser(t, db, "buyer@x.com", "buyer_01", false)
	p1 := shopProduct(t, db, "keyboard", 49.99, 3)
	p2 := shopProduct(t, db, "mouse", 19.99, 1)

	status, body := shopRequest(t, app, http.MethodPost, "/order", map[string][]string{
		"products": {p1.ID.String(), p2.ID.String()},
	}, token)
	require.Equal(t, http.StatusCreated, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, models.OrderPending, data["status"])
	assert.InDelta(t, 69.98, data["total_price"], 0.001)

	var fresh1 models.Product
	require.NoError(t, db.First(&fresh1, "id = ?", p1.ID).Error)
	assert.Equal(t, 2, fresh1.Stock)
	var fresh2 models.Product
	require.NoError(t, db.First(&fresh2, "id = ?", p2.ID).Error)
	assert.Equal(t, 0, fresh2.Stock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	app, db := setupShop(t)
	_, token := shopUser(t, db, "buyer@x.com", "buyer_01", false)

	status, _ := shopRequest(t, app, http.MethodPost, "/order", map[string][]string{
		"products": {uuid.NewString()},
	}, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateOrderOutOfStockRollsBack(t *testing.T) {
	app, db := setupShop(t)
	_, token := shopUser(t, db, "buyer@x.com", "buyer_01", false)
	p1 := shopProduct(t, db, "keyboard", 49.99, 3)
	p2 := shopProduct(t, db, "mouse", 19.99, 0)

	status, body := shopRequest(t, app, http.MethodPost, "/order", map[string][]string{
		"products": {p1.ID.String(), p2.ID.String()},
	}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product mouse is out of stock.", body["message"])

	// Nothing was committed
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Zero(t, orders)

	var fresh models.Product
	require.NoError(t, db.First(&fresh, "id = ?", p1.ID).Error)
	assert.Equal(t, 3, fresh.Stock)
}

func TestGetOrderAccessControl(t *testing.T) {
	app, db := setupShop(t)
	owner, ownerToken := shopUser(t, db, "owner@x.com", "owner_01", false)
	_, otherToken := shopUser(t, db, "other@x.com", "other_01", false)
	_, staffToken := shopUser(t, db, "staff@x.com", "staff_01", true)

	order := models.Order{UserID: owner.ID, Status: models.OrderPending, TotalPrice: 10}
	require.NoError(t, db.Create(&order).Error)
	path := "/order/" + order.ID.String()

	status, _ := shopRequest(t, app, http.MethodGet, path, nil, ownerToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = shopRequest(t, app, http.MethodGet, path, nil, otherToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = shopRequest(t, app, http.MethodGet, path, nil, staffToken)
	assert.Equal(t, http.StatusOK, status)

	status, _ = shopRequest(t, app, http.MethodGet, path, nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestUpdateOrderStatusNotifiesOwner(t *testing.T) {
	app, db := setupShop(t)
	owner, ownerToken := shopUser(t, db, "owner@x.com", "owner_01", false)
	_, staffToken := shopUser(t, db, "staff@x.com", "staff_01", true)

	order := models.Order{UserID: owner.ID, Status: models.OrderPending, TotalPrice: 10}
	require.NoError(t, db.Create(&order).Error)
	path := "/order/" + order.ID.String()

	notified := make(chan string, 1)
	orig := sendOrderStatusEmail
	sendOrderStatusEmail = func(orderID, username, status, email string) error {
		notified <- email
		return nil
	}
	t.Cleanup(func() { sendOrderStatusEmail = orig })

	status, _ := shopRequest(t, app, http.MethodPut, path, map[string]string{"status": models.OrderShipped}, ownerToken)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = shopRequest(t, app, http.MethodPut, path, map[string]string{"status": "LOST"}, staffToken)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = shopRequest(t, app, http.MethodPut, path, map[string]string{"status": models.OrderShipped}, staffToken)
	require.Equal(t, http.StatusOK, status)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderShipped, fresh.Status)

	select {
	case email := <-notified:
		assert.Equal(t, "owner@x.com", email)
	case <-time.After(2 * time.Second):
		t.Fatal("owner was not notified")
	}
}
