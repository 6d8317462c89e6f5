package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/srinibas-vastra/backend/internal/config"
	"github.com/srinibas-vastra/backend/internal/database"
	"github.com/srinibas-vastra/backend/internal/handlers"
	"github.com/srinibas-vastra/backend/internal/integrations/cloudinary"
	"github.com/srinibas-vastra/backend/internal/middleware"
	"github.com/srinibas-vastra/backend/internal/models"
	"github.com/srinibas-vastra/backend/internal/routes"
	"github.com/srinibas-vastra/backend/internal/services"
)

const testJWTSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{
		SupabaseJWTSecret: testJWTSecret,
		AdminEmails:       "root@example.com",
	}

	productService := services.NewProductService(db, nil)
	sellerService := services.NewSellerService(db, nil, nil)

	app := fiber.New()

	auth, err := middleware.AuthRequired(cfg)
	if err != nil {
		t.Fatalf("failed to build auth middleware: %v", err)
	}

	routes.Setup(app, cfg, db,
		auth,
		handlers.NewHealthHandler(db),
		handlers.NewProductHandler(productService),
		handlers.NewUserHandler(services.NewUserService(db), services.NewProfileService(db)),
		handlers.NewAddressHandler(services.NewAddressService(db)),
		handlers.NewCartHandler(services.NewCartService(db)),
		handlers.NewSellerHandler(sellerService, productService),
		handlers.NewUploadHandler(cloudinary.NewClient(cfg)),
		handlers.NewAdminHandler(sellerService),
	)
	return app, db
}

func signToken(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func seedApprovedSellerWithProduct(t *testing.T, db *gorm.DB) (*models.SellerProfile, *models.Product) {
	t.Helper()

	user := models.User{ID: uuid.New(), Email: "shop@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create seller user: %v", err)
	}
	profile := models.SellerProfile{
		UserID:               user.ID,
		ShopName:             "Utkal Handlooms",
		GSTNumber:            "21AAAAA0000A1Z5",
		IsRequestedForSeller: true,
		IsApprovedByAdmin:    true,
		Status:               models.SellerStatusApproved,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create seller profile: %v", err)
	}
	product := models.Product{
		SellerID:    profile.ID,
		Name:        "Sambalpuri Silk Saree",
		Description: "Handwoven ikat silk",
		Price:       4999,
		Stock:       5,
		IsAvailable: true,
		Category:    "saree",
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return &profile, &product
}
