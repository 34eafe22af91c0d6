package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/katisd/bookmarkd/pkg/bookmarkd/auth"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/bookmarks"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/models"
	"github.com/katisd/bookmarkd/pkg/bookmarkd/users"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// setupFullServer creates a Gin engine with all routes registered.
// This mirrors the setup in cmd/bookmarkd-server/main.go
func setupFullServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "bookmarkd"})
	})

	authHandler := auth.NewHandler(db)
	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", auth.AuthMiddleware())

	usersHandler := users.NewHandler(db)
	usersHandler.RegisterRoutes(protected)

	bookmarksHandler := bookmarks.NewHandler(db)
	bookmarksHandler.RegisterRoutes(protected)

	return r
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp := httptest.NewRecorder()
	c.router.ServeHTTP(resp, req)
	return resp
}

func (c *client) signupAndSignin(email, password string) {
	c.t.Helper()
	resp := c.do("POST", "/auth/signup", gin.H{"email": email, "password": password})
	if resp.Code != http.StatusCreated {
		c.t.Fatalf("Signup failed with %d: %s", resp.Code, resp.Body.String())
	}
	resp = c.do("POST", "/auth/signin", gin.H{"email": email, "password": password})
	if resp.Code != http.StatusOK {
		c.t.Fatalf("Signin failed with %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body.AccessToken == "" {
		c.t.Fatal("Signin returned no access_token")
	}
	c.token = body.AccessToken
}

// TestServerStartup verifies that all routes can be registered without conflicts
func TestServerStartup(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)
	if router == nil {
		t.Fatal("Expected router to be created")
	}
}

// TestHealthEndpoint verifies the health endpoint responds correctly
func TestHealthEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	req, _ := http.NewRequest("GET", "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}

// TestBookmarkLifecycle walks the full signup → signin → create → list →
// get → edit → delete flow as one user would experience it.
func TestBookmarkLifecycle(t *testing.T) {
	db := setupTestDB(t)
	c := &client{t: t, router: setupFullServer(db)}
	c.signupAndSignin("aa@gmail.com", "123456")

	// Empty list to start
	resp := c.do("GET", "/bookmarks", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("List failed with %d", resp.Code)
	}
	var list []bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Fatalf("Expected empty list, got %d", len(list))
	}

	// Create
	resp = c.do("POST", "/bookmarks", gin.H{"title": "first", "link": "http://aaa.com"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Create failed with %d: %s", resp.Code, resp.Body.String())
	}
	var created bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &created)
	if created.ID == 0 {
		t.Fatal("Expected assigned id")
	}

	// List of one
	resp = c.do("GET", "/bookmarks", nil)
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("Expected list of the created bookmark, got %+v", list)
	}

	// Get by id
	resp = c.do("GET", fmt.Sprintf("/bookmarks/%d", created.ID), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Get failed with %d", resp.Code)
	}
	var got bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.ID != created.ID {
		t.Errorf("Expected id %d, got %d", created.ID, got.ID)
	}

	// Edit title only
	resp = c.do("PATCH", fmt.Sprintf("/bookmarks/%d", created.ID), gin.H{"title": "second"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Edit failed with %d: %s", resp.Code, resp.Body.String())
	}
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.Title != "second" {
		t.Errorf("Expected title second, got %s", got.Title)
	}
	if got.Link != "http://aaa.com" {
		t.Errorf("Expected link unchanged, got %s", got.Link)
	}

	// Delete
	resp = c.do("DELETE", fmt.Sprintf("/bookmarks/%d", created.ID), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("Delete failed with %d", resp.Code)
	}

	// Empty again
	resp = c.do("GET", "/bookmarks", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("List after delete failed with %d", resp.Code)
	}
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Errorf("Expected empty list after delete, got %d", len(list))
	}
}

// TestBookmarkIsolationBetweenUsers verifies one user can never see or
// mutate another user's bookmarks.
func TestBookmarkIsolationBetweenUsers(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	alice := &client{t: t, router: router}
	alice.signupAndSignin("alice@example.com", "123456")
	bob := &client{t: t, router: router}
	bob.signupAndSignin("bob@example.com", "123456")

	resp := alice.do("POST", "/bookmarks", gin.H{"title": "private", "link": "http://aaa.com"})
	var created bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &created)

	// Invisible in Bob's list and get
	resp = bob.do("GET", "/bookmarks", nil)
	var list []bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Errorf("Expected empty list for bob, got %d", len(list))
	}
	resp = bob.do("GET", fmt.Sprintf("/bookmarks/%d", created.ID), nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for bob's get, got %d", resp.Code)
	}

	// Edit and delete are forbidden and leave the bookmark intact
	resp = bob.do("PATCH", fmt.Sprintf("/bookmarks/%d", created.ID), gin.H{"title": "stolen"})
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for bob's edit, got %d", resp.Code)
	}
	resp = bob.do("DELETE", fmt.Sprintf("/bookmarks/%d", created.ID), nil)
	if resp.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for bob's delete, got %d", resp.Code)
	}

	resp = alice.do("GET", fmt.Sprintf("/bookmarks/%d", created.ID), nil)
	var got bookmarks.BookmarkResponse
	json.Unmarshal(resp.Body.Bytes(), &got)
	if got.Title != "private" {
		t.Errorf("Expected bookmark unchanged, got title %s", got.Title)
	}
}

// TestUserProfileFlow exercises /users/me and profile editing end to end.
func TestUserProfileFlow(t *testing.T) {
	db := setupTestDB(t)
	c := &client{t: t, router: setupFullServer(db)}
	c.signupAndSignin("aa@gmail.com", "123456")

	resp := c.do("GET", "/users/me", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Me failed with %d", resp.Code)
	}
	var me users.UserResponse
	json.Unmarshal(resp.Body.Bytes(), &me)
	if me.Email != "aa@gmail.com" {
		t.Errorf("Expected email aa@gmail.com, got %s", me.Email)
	}

	resp = c.do("PATCH", "/users", gin.H{"first_name": "bbb", "email": "vvv@aaa.com"})
	if resp.Code != http.StatusOK {
		t.Fatalf("Edit user failed with %d: %s", resp.Code, resp.Body.String())
	}
	json.Unmarshal(resp.Body.Bytes(), &me)
	if me.FirstName != "bbb" || me.Email != "vvv@aaa.com" {
		t.Errorf("Expected updated profile, got %+v", me)
	}
}

// TestProtectedRoutesRequireToken verifies the middleware runs before any
// handler body.
func TestProtectedRoutesRequireToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/bookmarks"},
		{"POST", "/bookmarks"},
		{"GET", "/bookmarks/1"},
		{"PATCH", "/bookmarks/1"},
		{"DELETE", "/bookmarks/1"},
		{"GET", "/users/me"},
		{"PATCH", "/users"},
	}
	for _, p := range paths {
		req, _ := http.NewRequest(p.method, p.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401 for %s %s without token, got %d", p.method, p.path, resp.Code)
		}
	}
}
