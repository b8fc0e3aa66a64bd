// Package gatewaytest provides an in-process fake of the quiz backend for
// exercising the gateway contract in tests.
package gatewaytest

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"techquiz-core/models"
)

type user struct {
	username     string
	email        string
	phone        string
	passwordHash []byte
}

// Server holds the fake backend's fixtures: quizzes to serve, registered
// users, and attempt ids to reject as stale.
type Server struct {
	mu      sync.Mutex
	secret  []byte
	quizzes []models.Quiz
	users   map[string]*user
	stale   map[string]bool
}

func New(secret string) *Server {
	return &Server{
		secret: []byte(secret),
		users:  make(map[string]*user),
		stale:  make(map[string]bool),
	}
}

func (s *Server) AddQuiz(quiz models.Quiz) {
	s.mu.Lock()
	s.quizzes = append(s.quizzes, quiz)
	s.mu.Unlock()
}

// AddUser registers a user reachable by username, email or phone.
func (s *Server) AddUser(username, email, phone, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &user{username: username, email: email, phone: phone, passwordHash: hash}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range []string{username, email, phone} {
		if id != "" {
			s.users[id] = u
		}
	}
	return nil
}

// MarkStale makes the submit endpoint reject this attempt id with 410.
func (s *Server) MarkStale(attemptID string) {
	s.mu.Lock()
	s.stale[attemptID] = true
	s.mu.Unlock()
}

// Handler builds the gin router implementing the backend contract.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cors.Default())

	r.GET("/quizzes", s.listQuizzes)
	r.POST("/auth/login", s.login)
	r.POST("/auth/register", s.register)
	r.POST("/attempts/:quizId/submit", s.requireToken, s.submitAttempt)

	return r
}

func (s *Server) listQuizzes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "8"))
	if page <= 0 || pageSize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page and pageSize must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.quizzes)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	items := []models.Quiz{}
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		items = s.quizzes[start:end]
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"totalPages": totalPages,
		"totalCount": total,
	})
}

func (s *Server) login(c *gin.Context) {
	var payload models.LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	u, ok := s.users[payload.Identifier]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(payload.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   u.username,
		Issuer:    "techquiz-backend",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) register(c *gin.Context) {
	var payload models.RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if payload.Username == "" || payload.Email == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email, and password are required"})
		return
	}

	s.mu.Lock()
	_, taken := s.users[payload.Email]
	s.mu.Unlock()
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	if err := s.AddUser(payload.Username, payload.Email, "", payload.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service Error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User Created Successfully"})
}

func (s *Server) requireToken(c *gin.Context) {
	header := c.GetHeader("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}
	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	c.Next()
}

func (s *Server) submitAttempt(c *gin.Context) {
	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale[sub.AttemptID] {
		c.JSON(http.StatusGone, gin.H{"error": "attempt expired"})
		return
	}

	quizID := c.Param("quizId")
	var quiz *models.Quiz
	for i := range s.quizzes {
		if s.quizzes[i].ID == quizID {
			quiz = &s.quizzes[i]
			break
		}
	}
	if quiz == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	score := 0
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		if selected, answered := sub.Answers[question.ID]; answered && question.IsCorrect(selected) {
			score += question.Marks
		}
	}

	percentage := 0.0
	if quiz.TotalMarks > 0 {
		percentage = float64(score) / float64(quiz.TotalMarks) * 100
	}
	c.JSON(http.StatusOK, gin.H{
		"score":      score,
		"totalMarks": quiz.TotalMarks,
		"percentage": percentage,
	})
}
