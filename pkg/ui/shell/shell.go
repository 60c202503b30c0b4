// Package shell is the application window: a navigation rail next to a content area showing
// one view at a time. UI callbacks are delivered one at a time under the event lock.
package shell

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"droscher.com/CookBook/configs"
	"droscher.com/CookBook/pkg/integrations"
	"droscher.com/CookBook/pkg/repository"
	"droscher.com/CookBook/pkg/ui/components"
	"droscher.com/CookBook/pkg/ui/views"
	"droscher.com/CookBook/pkg/viewmodel"
)

//go:embed templates
var files embed.FS

var templates = template.Must(template.New("shell").ParseFS(files, "templates/*.html"))

const startPath = "/cooks"

type Destination struct {
	Section string
	Path    string
	Label   string
	Icon    components.Icon
}

var destinations = []Destination{
	{Section: views.SectionCooks, Path: "/cooks", Label: "Cooks", Icon: components.IconCook},
	{Section: views.SectionDishes, Path: "/dishes", Label: "Dishes", Icon: components.IconDish},
	{Section: views.SectionIngredients, Path: "/ingredients", Label: "Ingredients", Icon: components.IconEgg},
}

type Shell struct {
	title      string
	stylesheet template.CSS
	views      []views.View
	logger     *zap.Logger
	events     sync.Mutex
}

// New builds the repositories, view-models and views over repo.
func New(repo *repository.Repository, conf *configs.Config, logger *zap.Logger) *Shell {
	cooks := repository.NewCooks(repo)
	dishes := repository.NewDishes(repo)
	ingredients := repository.NewIngredients(repo)

	var integration integrations.Integration

	for _, name := range conf.Integrations.Recipe {
		if integration = integrations.GetIntegration(name, conf.Integrations.AllowedDomains, logger); integration != nil {
			break
		}

		logger.Warn("unknown recipe integration", zap.String("name", name))
	}

	return &Shell{
		title:      conf.UI.Title,
		stylesheet: components.DefaultPalette().Stylesheet(),
		logger:     logger,
		views: []views.View{
			views.NewCookListView(viewmodel.NewCookListViewModel(cooks), conf.UI.TopCooks),
			views.NewCookDetailView(viewmodel.NewCookViewModel(cooks)),
			views.NewDishListView(viewmodel.NewDishListViewModel(dishes, ingredients, integration, logger)),
			views.NewDishDetailView(viewmodel.NewDishViewModel(dishes)),
			views.NewIngredientListView(viewmodel.NewIngredientListViewModel(ingredients)),
			views.NewIngredientDetailView(viewmodel.NewIngredientViewModel(ingredients)),
		},
	}
}

func (s *Shell) Handler() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(s.notFound)
	router.PanicHandler = s.recoverPanic

	router.HandlerFunc(http.MethodGet, "/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, startPath, http.StatusSeeOther)
	})

	for _, view := range s.views {
		for _, route := range view.Routes() {
			router.HandlerFunc(route.Method, route.Path, s.handle(route.Handler))
		}
	}

	return router
}

// handle runs a view handler under the event lock and writes its page.
func (s *Shell) handle(handler views.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.events.Lock()
		defer s.events.Unlock()

		page, err := handler(r)
		if err != nil {
			s.logger.Error("error handling request", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
			s.renderError(w, http.StatusInternalServerError, err.Error())

			return
		}

		if page.Redirect != "" {
			http.Redirect(w, r, page.Redirect, http.StatusSeeOther)

			return
		}

		s.render(w, http.StatusOK, page)
	}
}

func (s *Shell) notFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, http.StatusNotFound, fmt.Sprintf("%s was not found", r.URL.Path))
}

func (s *Shell) recoverPanic(w http.ResponseWriter, r *http.Request, recovered any) {
	s.logger.Error("panic handling request", zap.String("path", r.URL.Path), zap.Any("panic", recovered))
	s.renderError(w, http.StatusInternalServerError, "internal error")
}

func (s *Shell) renderError(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, "error", message); err != nil {
		s.logger.Error("error rendering error page", zap.Error(err))
		http.Error(w, message, status)

		return
	}

	s.render(w, status, &views.Page{Title: "Error", Content: template.HTML(buf.String())}) //nolint:gosec // produced by html/template
}

func (s *Shell) render(w http.ResponseWriter, status int, page *views.Page) {
	var buf bytes.Buffer

	err := templates.ExecuteTemplate(&buf, "layout", struct {
		AppTitle     string
		Stylesheet   template.CSS
		Destinations []Destination
		Page         *views.Page
	}{s.title, s.stylesheet, destinations, page})
	if err != nil {
		s.logger.Error("error rendering page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("error writing response", zap.Error(err))
	}
}
