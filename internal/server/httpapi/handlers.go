package httpapi

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/userfed/internal/server/auth"
	"github.com/dmitrijs2005/userfed/internal/server/directory"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID         string              `json:"id"`
	Username   string              `json:"username"`
	FirstName  string              `json:"firstName,omitempty"`
	LastName   string              `json:"lastName,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty"`
}

func toUserResponse(identity *directory.Identity) userResponse {
	return userResponse{
		ID:         identity.ID(),
		Username:   identity.Username(),
		FirstName:  identity.FirstName(),
		LastName:   identity.LastName(),
		Attributes: identity.Attributes(),
	}
}

// login validates a password credential and mints a JWT for the identity.
// Unknown users, bad passwords and store failures all produce the same 401.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	provider := s.newProvider()
	ctx := c.Request.Context()

	identity := provider.LookupByUsername(ctx, req.Username)
	input := directory.CredentialInput{Kind: directory.CredentialPassword, Secret: req.Password}

	if identity == nil || !provider.IsValid(ctx, identity, input) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(identity.ID(), []byte(s.cfg.SecretKey), s.cfg.TokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// listUsers serves both host call shapes: without paging parameters the full
// (possibly filtered) set is returned, with them a first/max view of it. An
// absent or empty search term means "no filter".
func (s *Server) listUsers(c *gin.Context) {
	term := c.Query("search")
	firstStr := c.Query("first")
	maxStr := c.Query("max")

	provider := s.newProvider()
	ctx := c.Request.Context()

	var identities []*directory.Identity

	if firstStr == "" && maxStr == "" {
		identities = provider.Search(ctx, term)
	} else {
		first, ok := parsePagingParam(firstStr, 0)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid first parameter"})
			return
		}
		// Absent max takes everything from first onwards.
		max, ok := parsePagingParam(maxStr, math.MaxInt)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max parameter"})
			return
		}
		identities = provider.SearchPage(ctx, term, first, max)
	}

	result := make([]userResponse, 0, len(identities))
	for _, identity := range identities {
		result = append(result, toUserResponse(identity))
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

func parsePagingParam(s string, absent int) (int, bool) {
	if s == "" {
		return absent, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *Server) countUsers(c *gin.Context) {
	provider := s.newProvider()
	c.JSON(http.StatusOK, gin.H{"count": provider.Count(c.Request.Context())})
}

func (s *Server) getUser(c *gin.Context) {
	provider := s.newProvider()

	identity := provider.LookupByUsername(c.Request.Context(), c.Param("username"))
	if identity == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(identity))
}

// setPassword rotates the user's stored credential. A hasher misconfiguration
// is a 500; a store failure or a non-single-row update is a 502 because the
// external store, not this service, rejected the write.
func (s *Server) setPassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	provider := s.newProvider()
	ctx := c.Request.Context()

	identity := provider.LookupByUsername(ctx, c.Param("username"))
	if identity == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	input := directory.CredentialInput{Kind: directory.CredentialPassword, Secret: req.Password}

	ok, err := provider.UpdateCredential(ctx, identity, input)
	if err != nil {
		s.logger.Error(ctx, "credential update misconfigured", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"error": "credential update failed"})
		return
	}

	c.Status(http.StatusNoContent)
}
