package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/simplyfly/internal/domain"
	"github.com/Domenick1991/simplyfly/internal/service/identity"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service identity.IdentityUseCase
}

// Binding tags only reject malformed input. Missing register fields and
// password length rules are reported by the identity service.
// bcrypt refuses passwords longer than 72 bytes.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role"`
	Password string `json:"password" binding:"max=72"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message   string       `json:"message"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type meResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewAuthHandler(service identity.IdentityUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPublic mounts the endpoints that need no token.
func (h *AuthHandler) RegisterPublic(router gin.IRoutes) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.GET("/me", h.me)
	router.GET("/users", RequireRoles(domain.RoleAdmin, domain.RoleFlightowner), h.listUsers)

	admin := router.Group("/user", RequireRoles(domain.RoleAdmin))
	admin.GET("/:id", h.getUser)
	admin.PUT("/:id", h.updateUser)
	admin.DELETE("/:id", h.deleteUser)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), identity.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newAuthResponse("User registered successfully", result))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAuthResponse("Login successful", result))
}

func (h *AuthHandler) me(c *gin.Context) {
	id := caller(c)
	c.JSON(http.StatusOK, meResponse{ID: id.UserID, Name: id.Name, Email: id.Email, Role: string(id.Role)})
}

func (h *AuthHandler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) getUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *AuthHandler) updateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, identity.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": newUserResponse(user)})
}

func (h *AuthHandler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), caller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

func newAuthResponse(message string, result *identity.AuthResult) authResponse {
	return authResponse{
		Message:   message,
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      newUserResponse(result.User),
	}
}
