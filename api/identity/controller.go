package identity

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-runner/domain"
	"github.com/beka-birhanu/vinom-runner/service"
	"github.com/beka-birhanu/vinom-runner/service/i"
	"github.com/gin-gonic/gin"
)

// credentialErrors are rejections of what the client sent, keyed to their status.
var credentialErrors = []struct {
	err    error
	status int
}{
	{dmn.ErrUsernameTooShort, http.StatusBadRequest},
	{dmn.ErrUsernameTooLong, http.StatusBadRequest},
	{dmn.ErrUsernameFormat, http.StatusBadRequest},
	{dmn.ErrWeakPassword, http.StatusBadRequest},
	{dmn.ErrUsernameTaken, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
}

// Controller serves account registration and login under /auth.
type Controller struct {
	auth i.Authenticator
}

// NewController creates the account controller.
func NewController(auth i.Authenticator) *Controller {
	return &Controller{auth: auth}
}

// RegisterPublic mounts /auth/register and /auth/login.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/register", c.register)
		auth.POST("/login", c.login)
	}
}

// RegisterProtected has nothing to mount; every account route is public.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (c *Controller) register(ctx *gin.Context) {
	creds, ok := bindCredentials(ctx)
	if !ok {
		return
	}
	if err := c.auth.Register(creds.Username, creds.Password); err != nil {
		rejectCredentials(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "account created"})
}

func (c *Controller) login(ctx *gin.Context) {
	creds, ok := bindCredentials(ctx)
	if !ok {
		return
	}
	user, token, err := c.auth.SignIn(creds.Username, creds.Password)
	if err != nil {
		rejectCredentials(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &AuthResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Token:    token,
	})
}

func bindCredentials(ctx *gin.Context) (*AuthRequest, bool) {
	var creds AuthRequest
	if err := ctx.ShouldBindJSON(&creds); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &creds, true
}

// rejectCredentials reports known credential errors verbatim and hides the rest.
func rejectCredentials(ctx *gin.Context, err error) {
	for _, known := range credentialErrors {
		if errors.Is(err, known.err) {
			ctx.JSON(known.status, gin.H{"error": err.Error()})
			return
		}
	}
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
