package auth

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authService "passvault/internal/domain/auth"
)

const (
	msgDuplicateEmail     = "Email already registered"
	msgInvalidCredentials = "Incorrect email or password"
)

type Handler struct {
	service    authService.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service authService.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*tokenOutput, error) {
	token, err := h.service.Register(ctx, input.Body.Email, input.Body.Password, input.Body.MasterSalt)
	switch {
	case err == nil:
	case errors.Is(err, authService.ErrDuplicateEmail):
		return nil, huma.Error400BadRequest(msgDuplicateEmail)
	case errors.Is(err, authService.ErrInvalidInput):
		return nil, huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("register failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return tokenResponse(token), nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*tokenOutput, error) {
	email, password, err := parseCredentials(input.ContentType, input.RawBody)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error())
	}

	token, err := h.service.Login(ctx, email, password)
	switch {
	case err == nil:
	case errors.Is(err, authService.ErrInvalidCredentials):
		return nil, huma.Error401Unauthorized(msgInvalidCredentials)
	default:
		h.log.Error("login failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return tokenResponse(token), nil
}

func (h *Handler) logout(ctx context.Context, _ *struct{}) (*logoutOutput, error) {
	if err := h.service.Logout(ctx); err != nil {
		return nil, err
	}
	return &logoutOutput{Body: LogoutResponse{Detail: "logged_out"}}, nil
}

// parseCredentials reads username/password form fields or a JSON object.
// The form field is called username but carries the e-mail address.
func parseCredentials(contentType string, body []byte) (string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	var email, password string
	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "", "", errors.New("malformed form body")
		}
		email, password = values.Get("username"), values.Get("password")
	case "application/json", "":
		var req loginJSON
		if err := json.Unmarshal(body, &req); err != nil {
			return "", "", errors.New("malformed JSON body")
		}
		email, password = req.Email, req.Password
		if email == "" {
			email = req.Username
		}
	default:
		return "", "", errors.New("unsupported content type " + mediaType)
	}

	if email == "" {
		return "", "", errors.New("username is required")
	}
	if password == "" {
		return "", "", errors.New("password is required")
	}
	return email, password, nil
}

func tokenResponse(t authService.Token) *tokenOutput {
	return &tokenOutput{
		Body: TokenResponse{
			AccessToken: t.AccessToken,
			TokenType:   t.TokenType,
		},
	}
}
