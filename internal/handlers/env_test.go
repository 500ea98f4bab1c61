package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/mars-colony-api/internal/constants"
	"github.com/yukikurage/mars-colony-api/internal/credentials"
	"github.com/yukikurage/mars-colony-api/internal/database"
	"github.com/yukikurage/mars-colony-api/internal/models"
	"github.com/yukikurage/mars-colony-api/internal/repository"
	"github.com/yukikurage/mars-colony-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	storage     *database.Storage
	privileges  *services.Privileges
	auth        *services.AuthService
	jobs        *services.JobService
	departments *services.DepartmentService
	categories  *services.CategoryService
	reports     *services.ReportService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage := database.NewStorage(nil)
	require.NoError(t, storage.Initialize(database.Location{
		Driver:   database.DriverSQLite,
		DSN:      ":memory:",
		LogLevel: logger.Silent,
	}))
	t.Cleanup(func() {
		storage.Close()
	})

	db, err := storage.OpenSession()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, nil))

	colonists := repository.NewColonistRepository(db)
	categories := repository.NewCategoryRepository(db)

	return testEnv{
		db:          db,
		storage:     storage,
		privileges:  services.NewPrivileges([]uint64{constants.DefaultCaptainID}),
		auth:        services.NewAuthService(colonists, credentials.NewBcryptHasher(bcrypt.MinCost)),
		jobs:        services.NewJobService(repository.NewJobRepository(db), colonists, categories),
		departments: services.NewDepartmentService(repository.NewDepartmentRepository(db), colonists),
		categories:  services.NewCategoryService(categories),
		reports:     services.NewReportService(storage, nil),
	}
}

func (e testEnv) createColonist(t *testing.T, name, email string, age int, address string) *models.Colonist {
	t.Helper()
	colonist, err := e.auth.Register(services.RegisterInput{
		Name:     name,
		Age:      age,
		Address:  address,
		Email:    email,
		Password: "secret",
	})
	require.NoError(t, err)
	return colonist
}

// createAuthContext builds a test context as RequireAuth would leave it
func (e testEnv) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyActor, e.privileges.Actor(userID))

	return c, w
}
