package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/httputil"
	"github.com/promissoria/backend/internal/models"
)

// RegisterAuthRoutes registers the routes for registration and login with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", OptionsAuth)
	r.POST("/register", co.Register)

	r.OPTIONS("/login", OptionsAuth)
	r.POST("/login", co.Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authentication
// @Success		204
// @Router			/v1/auth/register [options]
// @Router			/v1/auth/login [options]
func OptionsAuth(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Register
// @Description	Creates a new user on the free plan and returns an access token
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		201		{object}	TokenResponse
// @Failure		400		{object}	TokenResponse
// @Failure		409		{object}	TokenResponse
// @Failure		500		{object}	TokenResponse
// @Param			user	body		RegisterEditable	true	"User"
// @Router			/v1/auth/register [post]
func (co Controller) Register(c *gin.Context) {
	var editable RegisterEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	user := models.User{
		Email: editable.Email,
		Name:  editable.Name,
	}

	err = user.SetPassword(editable.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	co.respondToken(c, http.StatusCreated, user)
}

// @Summary		Login
// @Description	Returns an access token for the user
// @Tags			Authentication
// @Accept			json
// @Produce		json
// @Success		200			{object}	TokenResponse
// @Failure		400			{object}	TokenResponse
// @Failure		401			{object}	TokenResponse
// @Failure		500			{object}	TokenResponse
// @Param			credentials	body		Credentials	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var credentials Credentials
	err := httputil.BindData(c, &credentials)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	user, err := models.Authenticate(models.DB, credentials.Email, credentials.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TokenResponse{
			Error: &s,
		})
		return
	}

	co.respondToken(c, http.StatusOK, user)
}

func (co Controller) respondToken(c *gin.Context, code int, user models.User) {
	token, expiresAt, err := co.Issuer.Issue(user.Subject(), co.now())
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, TokenResponse{
			Error: &s,
		})
		return
	}

	c.JSON(code, TokenResponse{
		Data: &Token{
			Token:     token,
			ExpiresAt: expiresAt,
			Links: TokenLinks{
				Me: c.GetString(string(models.DBContextURL)) + "/v1/me",
			},
		},
	})
}
