package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/ui"
	"github.com/skillswap/skillswap/internal/ui/pages"
	"github.com/skillswap/skillswap/internal/validation"
)

const (
	msgEmailRegistered   = "Email already registered!"
	msgRegisterDBError   = "A database error occurred during registration. Check server logs."
	msgLoginFailed       = "Login failed, check your email or password."
	msgSomethingWrong    = "Something went wrong, please try again."
	pictureFileField     = "profile_picture_file"
	multipartMemoryLimit = 1 << 20
)

type AuthHandler struct {
	authService    *service.AuthService
	pictureService *service.PictureService
	maxUploadBytes int64
}

func NewAuthHandler(authService *service.AuthService, pictureService *service.PictureService, maxUploadMB int64) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		pictureService: pictureService,
		maxUploadBytes: maxUploadMB << 20,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register(pages.RegisterForm{UploadsEnabled: h.pictureService.UploadsEnabled()}))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := pages.RegisterForm{UploadsEnabled: h.pictureService.UploadsEnabled()}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	err := r.ParseMultipartForm(multipartMemoryLimit)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		slog.Warn("failed to parse registration form", "error", err)
		form.Error = "The form could not be read. Pictures must be smaller than the upload limit."
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.Register(form))
		return
	}

	form.Name = strings.TrimSpace(r.FormValue("name"))
	form.Email = strings.TrimSpace(r.FormValue("email"))
	form.Skills = r.FormValue("skills")
	form.Purpose = r.FormValue("purpose")
	form.Contact = r.FormValue("contact")
	form.DOB = r.FormValue("dob")
	form.Age = r.FormValue("age")
	form.PictureURL = strings.TrimSpace(r.FormValue("profile_picture"))

	fail := func(status int, msg string) {
		form.Error = msg
		ui.RenderStatus(w, r, status, pages.Register(form))
	}

	now := time.Now().UTC()
	dob, err := validation.ParseDOB(form.DOB, now)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	age, err := validation.ParseAge(form.Age, dob, now)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	err = validation.ValidatePictureURL(form.PictureURL)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}
	err = validation.ValidateContact(form.Contact)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	picture := form.PictureURL
	uploaded := ""
	file, header, err := r.FormFile(pictureFileField)
	switch {
	case err == nil:
		defer closeFile(file)
		uploaded, err = h.pictureService.Upload(r.Context(), file, header)
		if err != nil {
			slog.Warn("profile picture rejected", "error", err)
			fail(http.StatusBadRequest, "Profile picture: "+err.Error())
			return
		}
		picture = uploaded
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		slog.Warn("failed to read profile picture", "error", err)
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:           form.Name,
		Email:          form.Email,
		Password:       r.FormValue("password"),
		Skills:         form.Skills,
		Purpose:        form.Purpose,
		Contact:        form.Contact,
		ProfilePicture: picture,
		DOB:            dob,
		Age:            age,
	})
	if err != nil {
		if uploaded != "" {
			h.pictureService.Delete(r.Context(), uploaded)
		}

		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			fail(http.StatusConflict, msgEmailRegistered)
		case errors.As(err, &verr):
			fail(http.StatusBadRequest, verr.Error())
		default:
			slog.Error("registration failed", "error", err, "email", form.Email)
			fail(http.StatusInternalServerError, msgRegisterDBError)
		}
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	h.startSession(w, r, user)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(pages.LoginForm{}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := pages.LoginForm{Email: strings.TrimSpace(r.FormValue("email"))}
	password := r.FormValue("password")

	if form.Email == "" || password == "" {
		form.Error = msgLoginFailed
		ui.Render(w, r, pages.Login(form))
		return
	}

	user, err := h.authService.Login(r.Context(), form.Email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Warn("password login failed", "email", form.Email)
			form.Error = msgLoginFailed
			ui.Render(w, r, pages.Login(form))
			return
		}
		slog.Error("login failed", "error", err)
		form.Error = msgSomethingWrong
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.Login(form))
		return
	}

	h.startSession(w, r, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// startSession sets the session cookie and sends the user to the landing page.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate JWT", "error", err, "user_id", user.ID)
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.Login(pages.LoginForm{Error: msgSomethingWrong}))
		return
	}
	h.authService.SetJWTCookie(w, token, expiry)

	slog.Info("user logged in", "user_id", user.ID)
	http.Redirect(w, r, "/landing", http.StatusSeeOther)
}

func closeFile(f multipart.File) {
	err := f.Close()
	if err != nil {
		slog.Error("failed to close file", "error", err)
	}
}
