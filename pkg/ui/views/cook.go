package views

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/ui/components"
	"droscher.com/CookBook/pkg/viewmodel"
)

const cooksPath = "/cooks"

type searchData struct {
	Action string
	Fields []template.HTML
}

type listData struct {
	Items []template.HTML
	Empty string
}

type CookListView struct {
	list     *viewmodel.CookListViewModel
	topCooks int
}

func NewCookListView(list *viewmodel.CookListViewModel, topCooks int) *CookListView {
	return &CookListView{list: list, topCooks: topCooks}
}

func (v *CookListView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: cooksPath, Handler: v.Show},
		{Method: http.MethodPost, Path: cooksPath, Handler: v.Create},
	}
}

func (v *CookListView) Show(r *http.Request) (*Page, error) {
	var dialog template.HTML
	if r.URL.Query().Get("dialog") == "new" {
		dialog = v.newCookForm().Render()
	}

	return v.render(r, dialog)
}

func (v *CookListView) Create(r *http.Request) (*Page, error) {
	form := v.newCookForm()

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form.Render())
	}

	return redirect(cooksPath), nil
}

func (v *CookListView) newCookForm() *components.FormDialog {
	return components.NewFormBuilder("New cook", cooksPath).
		AddTextField("name", "Name", "", true).
		AddMultilineField("bio", "Bio", "", false).
		OnSave(func(ctx context.Context, values map[string]string) error {
			_, err := v.list.Add(ctx, &model.Cook{Name: values["name"], Bio: values["bio"]})

			return err
		}).
		BuildDialog()
}

func (v *CookListView) render(r *http.Request, dialog template.HTML) (*Page, error) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	cooks, err := v.list.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}

	top, err := v.list.TopCooks(ctx, v.topCooks)
	if err != nil {
		return nil, err
	}

	topItems := make([]template.HTML, 0, len(top))
	for _, cook := range top {
		topItems = append(topItems, components.ListItem(cook.Name, dishCount(cook.DishCount), idPath(cooksPath, cook.ID)))
	}

	items := make([]template.HTML, 0, len(cooks))
	for _, cook := range cooks {
		items = append(items, components.ListItem(cook.Name, cook.Bio, idPath(cooksPath, cook.ID)))
	}

	return renderPage("Cooks", SectionCooks, "cook-list", struct {
		Search    searchData
		NewButton template.HTML
		TopCount  int
		TopCooks  listData
		Cooks     listData
		Dialog    template.HTML
	}{
		Search: searchData{
			Action: cooksPath,
			Fields: []template.HTML{components.TextField("q", "Name", query, components.Placeholder("Search cooks"))},
		},
		NewButton: components.Button(string(components.IconAdd)+" New cook", components.Link(cooksPath+"?dialog=new"), components.VariantPrimary),
		TopCount:  v.topCooks,
		TopCooks:  listData{Items: topItems, Empty: "No cooks yet"},
		Cooks:     listData{Items: items, Empty: "No cooks found"},
		Dialog:    dialog,
	})
}

func dishCount(count int64) string {
	if count == 1 {
		return "1 dish"
	}

	return fmt.Sprintf("%d dishes", count)
}

type CookDetailView struct {
	viewModel *viewmodel.CookViewModel
}

func NewCookDetailView(viewModel *viewmodel.CookViewModel) *CookDetailView {
	return &CookDetailView{viewModel: viewModel}
}

func (v *CookDetailView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: cooksPath + "/:id", Handler: v.Show},
		{Method: http.MethodPost, Path: cooksPath + "/:id", Handler: v.Update},
		{Method: http.MethodPost, Path: cooksPath + "/:id/delete", Handler: v.Delete},
	}
}

func (v *CookDetailView) Show(r *http.Request) (*Page, error) {
	cook, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(cooksPath), err
	}

	var dialog template.HTML
	if r.URL.Query().Get("confirm") == "delete" {
		dialog = components.AlertDialog(
			"Delete cook",
			fmt.Sprintf("Delete %s and all of their dishes? Dishes that still list ingredients block the delete until those ingredients are removed.", cook.Name),
			"Delete",
			components.Post(idPath(cooksPath, cook.ID)+"/delete"),
			idPath(cooksPath, cook.ID),
		)
	}

	return v.render(r, v.editForm(cook), dialog)
}

func (v *CookDetailView) Update(r *http.Request) (*Page, error) {
	cook, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(cooksPath), err
	}

	form := v.editForm(cook)

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form, "")
	}

	return redirect(idPath(cooksPath, cook.ID)), nil
}

func (v *CookDetailView) Delete(r *http.Request) (*Page, error) {
	_, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(cooksPath), err
	}

	if err := v.viewModel.Delete(r.Context()); err != nil {
		return nil, err
	}

	return redirect(cooksPath), nil
}

func (v *CookDetailView) load(r *http.Request) (model.Cook, bool, error) {
	id, ok := readIDParam(r, "id")
	if !ok {
		return model.Cook{}, false, nil
	}

	if err := v.viewModel.Load(r.Context(), id); err != nil {
		return model.Cook{}, false, err
	}

	cook, ok := v.viewModel.Current()

	return cook, ok, nil
}

func (v *CookDetailView) editForm(cook model.Cook) *components.Form {
	return components.NewFormBuilder(cook.Name, idPath(cooksPath, cook.ID)).
		AddTextField("name", "Name", cook.Name, true).
		AddMultilineField("bio", "Bio", cook.Bio, false).
		SaveText("Update").
		OnSave(func(ctx context.Context, values map[string]string) error {
			if err := v.viewModel.Modify(func(cook *model.Cook) {
				cook.Name = values["name"]
				cook.Bio = values["bio"]
			}); err != nil {
				return err
			}

			return v.viewModel.Update(ctx)
		}).
		Build()
}

func (v *CookDetailView) render(r *http.Request, form *components.Form, dialog template.HTML) (*Page, error) {
	detail, err := v.viewModel.Detail(r.Context())
	if err != nil {
		return nil, err
	}

	dishes := make([]template.HTML, 0, len(detail.Dishes))
	for _, dish := range detail.Dishes {
		dishes = append(dishes, components.ListItem(dish.Name, dish.Description, idPath(dishesPath, dish.ID)))
	}

	self := idPath(cooksPath, detail.ID)

	return renderPage(detail.Name, SectionCooks, "cook-detail", struct {
		Name         string
		BackButton   template.HTML
		DeleteButton template.HTML
		Form         template.HTML
		Dishes       listData
		Dialog       template.HTML
	}{
		Name:         detail.Name,
		BackButton:   components.Button("Back", components.Link(cooksPath), components.VariantSecondary),
		DeleteButton: components.Button(string(components.IconDelete)+" Delete", components.Link(self+"?confirm=delete"), components.VariantDanger),
		Form:         form.Render(),
		Dishes:       listData{Items: dishes, Empty: "No dishes yet"},
		Dialog:       dialog,
	})
}
