package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"casepanel/internal/application/auth"
	"casepanel/internal/delivery/http/session"
	"casepanel/internal/domain/user"
)

// PageHandler serves the server-rendered panel pages. The heavy screens live
// in the frontend; these pages only cover the sign-in flow and the landing.
type PageHandler struct {
	service auth.Service
	cookies *session.Gateway
}

func NewPageHandler(service auth.Service, cookies *session.Gateway) *PageHandler {
	return &PageHandler{
		service: service,
		cookies: cookies,
	}
}

// Login handles GET /login (form) and POST /login (submit)
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderPage(w, loginTmpl, loginPageData{})
	case http.MethodPost:
		h.submitLogin(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PageHandler) submitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := user.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	result, err := h.service.Login(req)
	if err != nil {
		message := "Invalid username or password"
		switch {
		case errors.Is(err, user.ErrMissingFields):
			message = "Username and password are required"
		case errors.Is(err, user.ErrInvalidCredentials):
			// generic on purpose: no account-existence signal
		default:
			log.Printf("pages: login failed: %v", err)
			message = "Something went wrong, please try again"
		}
		w.WriteHeader(http.StatusUnauthorized)
		renderPage(w, loginTmpl, loginPageData{Username: req.Username, Error: message})
		return
	}

	h.cookies.Write(w, result.Token, result.ExpiresAt)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Register handles GET /register (form) and POST /register (submit)
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		renderPage(w, registerTmpl, registerPageData{})
	case http.MethodPost:
		h.submitRegister(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PageHandler) submitRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	req := user.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Name:     r.PostFormValue("name"),
	}

	if _, err := h.service.Register(req); err != nil {
		data := registerPageData{Username: req.Username, Name: req.Name}
		var fieldErrs user.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			data.FieldErrors = fieldErrs
		case errors.Is(err, user.ErrUsernameTaken):
			data.FieldErrors = user.FieldErrors{"username": "username already taken"}
		default:
			log.Printf("pages: register failed: %v", err)
			data.Error = "Something went wrong, please try again"
		}
		w.WriteHeader(http.StatusBadRequest)
		renderPage(w, registerTmpl, data)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Dashboard handles GET /dashboard, the authenticated landing page. The edge
// middleware already gates it; the guard here re-checks so the page stays
// safe if it is ever mounted outside the gated area.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims := h.service.Session(h.cookies.Read(r))
	if claims == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	name := claims.Name
	if name == "" {
		name = claims.Username
	}
	renderPage(w, dashboardTmpl, dashboardPageData{Name: name, Role: string(claims.Role)})
}

// Logout handles POST /logout
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type loginPageData struct {
	Username string
	Error    string
}

type registerPageData struct {
	Username    string
	Name        string
	Error       string
	FieldErrors user.FieldErrors
}

type dashboardPageData struct {
	Name string
	Role string
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("pages: render failed: %v", err)
	}
}

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in - Case Panel</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
  <label>Username <input type="text" name="username" value="{{.Username}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>
<p><a href="/register">Create an account</a></p>
</body>
</html>`))

var registerTmpl = template.Must(template.New("register").Parse(`<!DOCTYPE html>
<html>
<head><title>Register - Case Panel</title></head>
<body>
<h1>Create account</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/register">
  <label>Username <input type="text" name="username" value="{{.Username}}"></label>
  {{with .FieldErrors.username}}<p class="error">{{.}}</p>{{end}}
  <label>Display name <input type="text" name="name" value="{{.Name}}"></label>
  <label>Password <input type="password" name="password"></label>
  {{with .FieldErrors.password}}<p class="error">{{.}}</p>{{end}}
  <button type="submit">Register</button>
</form>
<p><a href="/login">Back to sign in</a></p>
</body>
</html>`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Dashboard - Case Panel</title></head>
<body>
<h1>Welcome, {{.Name}}</h1>
<p>Signed in as {{.Role}}.</p>
<form method="post" action="/logout"><button type="submit">Sign out</button></form>
</body>
</html>`))
