package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	analyticsdomain "smartsave-go/internal/domain/analytics"
	"smartsave-go/internal/domain/user"
	"smartsave-go/internal/transport/httpserver/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = template.Must(template.New("pages").Funcs(template.FuncMap{
	"rupees": formatRupees,
}).ParseFS(templateFS, "templates/*.html"))

type indexPage struct {
	User *user.Profile
}

type goalPage struct {
	User      *user.Profile
	Dashboard analyticsdomain.Dashboard
}

// Static serves the browser script and styles.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", indexPage{User: currentUser(r)})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		http.Redirect(w, r, "/goal", http.StatusFound)
		return
	}
	h.render(w, "login.html", indexPage{})
}

func (h *Handlers) GoalPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "goal.html", goalPage{
		User:      currentUser(r),
		Dashboard: h.Analytics.Dashboard(r.Context()),
	})
}

func (h *Handlers) render(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.InternalError("pages.render: execute template failed", err, "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func currentUser(r *http.Request) *user.Profile {
	profile, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	return &profile
}

// rupeePrinter groups digits the Indian way: 12,34,567.
var rupeePrinter = message.NewPrinter(language.MustParse("en-IN"))

func formatRupees(amount int64) string {
	formatted := rupeePrinter.Sprintf("%d", amount)
	if digits, ok := strings.CutPrefix(formatted, "-"); ok {
		return "-₹" + digits
	}
	return "₹" + formatted
}
