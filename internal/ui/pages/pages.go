// Package pages holds the server-rendered views. Each view is a
// templ.Component backed by an embedded html/template sharing one layout.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skillswap/skillswap/internal/config"
	"github.com/skillswap/skillswap/internal/ctxkeys"
	"github.com/skillswap/skillswap/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var titleCaser = cases.Title(language.English)

var funcs = template.FuncMap{
	"label": func(s string) string { return titleCaser.String(s) },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006 15:04")
	},
	"initial": func(name string) string {
		for _, r := range strings.TrimSpace(name) {
			return strings.ToUpper(string(r))
		}
		return "?"
	},
	// Only for HTML produced by the markdown parser, which drops raw HTML.
	"rendered": func(s string) template.HTML { return template.HTML(s) },
	"active": func(current, path string) bool { return current == path },
	"cards":  newCardList,
}

var views = map[string]*template.Template{}

func init() {
	names := []string{
		"register", "login", "landing", "users", "messages", "collaborate",
		"notifications", "detailed_users", "mutual_messages", "static", "not_found",
	}
	for _, name := range names {
		views[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(
			templateFS, "templates/layout.html", "templates/partials.html", "templates/"+name+".html",
		))
	}
}

// layout is what every template sees as its root value.
type layout struct {
	Title     string
	Nonce     string
	CSRFToken string
	Path      string
	User      *model.User
	Config    *config.Config
	Data      any
}

// cardList feeds the shared user card partial.
type cardList struct {
	Users     []*model.UserSummary
	CSRFToken string
	SelfID    int64
}

func newCardList(l layout, users []*model.UserSummary) cardList {
	list := cardList{Users: users, CSRFToken: l.CSRFToken}
	if l.User != nil {
		list.SelfID = l.User.ID
	}
	return list
}

func view(name, title string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := views[name]
		if !ok {
			return fmt.Errorf("unknown view %q", name)
		}
		return t.ExecuteTemplate(w, "layout", layout{
			Title:     title,
			Nonce:     templ.GetNonce(ctx),
			CSRFToken: ctxkeys.CSRFToken(ctx),
			Path:      ctxkeys.URLPath(ctx),
			User:      ctxkeys.User(ctx),
			Config:    ctxkeys.Config(ctx),
			Data:      data,
		})
	})
}

// RegisterForm repopulates the registration form after an error.
type RegisterForm struct {
	Name           string
	Email          string
	Skills         string
	Purpose        string
	Contact        string
	DOB            string
	Age            string
	PictureURL     string
	Error          string
	UploadsEnabled bool
}

type LoginForm struct {
	Email string
	Error string
}

type LandingData struct {
	Query      string
	Categories []string
	Selected   map[string]bool
	Users      []*model.UserSummary
	Error      string
}

type RequestForm struct {
	Title       string
	Description string
	SkillNeeded string
}

type CollaborateData struct {
	Requests []*model.ProjectRequest
	Form     RequestForm
	Error    string
}

type ListData[T any] struct {
	Items []T
	Error string
}

type StaticPage struct {
	Title   string
	Summary string
	Content string
}

func Register(form RegisterForm) templ.Component {
	return view("register", "Create your account", form)
}

func Login(form LoginForm) templ.Component {
	return view("login", "Log in", form)
}

func Landing(data LandingData) templ.Component {
	return view("landing", "Find people", data)
}

func Users(users []*model.UserSummary, errMsg string) templ.Component {
	return view("users", "All users", ListData[*model.UserSummary]{Items: users, Error: errMsg})
}

func Messages(messages []*model.InboxMessage, errMsg string) templ.Component {
	return view("messages", "Messages", ListData[*model.InboxMessage]{Items: messages, Error: errMsg})
}

func Collaborate(data CollaborateData) templ.Component {
	return view("collaborate", "Collaborate", data)
}

func Notifications(feed []*model.Notification, errMsg string) templ.Component {
	return view("notifications", "Notifications", ListData[*model.Notification]{Items: feed, Error: errMsg})
}

func DetailedUsers(rows []*model.DetailedUser, errMsg string) templ.Component {
	return view("detailed_users", "Detailed users", ListData[*model.DetailedUser]{Items: rows, Error: errMsg})
}

func MutualMessages(rows []*model.MutualPair, errMsg string) templ.Component {
	return view("mutual_messages", "Mutual messages", ListData[*model.MutualPair]{Items: rows, Error: errMsg})
}

func Static(page StaticPage) templ.Component {
	return view("static", page.Title, page)
}

func NotFound() templ.Component {
	return view("not_found", "Page not found", nil)
}
