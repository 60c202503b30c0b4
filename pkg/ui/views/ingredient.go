package views

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/ui/components"
	"droscher.com/CookBook/pkg/viewmodel"
)

const ingredientsPath = "/ingredients"

type IngredientListView struct {
	list *viewmodel.IngredientListViewModel
}

func NewIngredientListView(list *viewmodel.IngredientListViewModel) *IngredientListView {
	return &IngredientListView{list: list}
}

func (v *IngredientListView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: ingredientsPath, Handler: v.Show},
		{Method: http.MethodPost, Path: ingredientsPath, Handler: v.Create},
		{Method: http.MethodPost, Path: ingredientsPath + "/bulk", Handler: v.BulkAdd},
	}
}

func (v *IngredientListView) Show(r *http.Request) (*Page, error) {
	var dialog template.HTML

	switch r.URL.Query().Get("dialog") {
	case "new":
		dialog = v.newIngredientForm().Render()
	case "bulk":
		dialog = v.bulkForm().Render()
	}

	return v.render(r, dialog)
}

func (v *IngredientListView) Create(r *http.Request) (*Page, error) {
	return v.submit(r, v.newIngredientForm())
}

func (v *IngredientListView) BulkAdd(r *http.Request) (*Page, error) {
	return v.submit(r, v.bulkForm())
}

func (v *IngredientListView) submit(r *http.Request, form *components.FormDialog) (*Page, error) {
	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form.Render())
	}

	return redirect(ingredientsPath), nil
}

func (v *IngredientListView) newIngredientForm() *components.FormDialog {
	return components.NewFormBuilder("New ingredient", ingredientsPath).
		AddTextField("name", "Name", "", true).
		OnSave(func(ctx context.Context, values map[string]string) error {
			_, err := v.list.Add(ctx, &model.Ingredient{Name: values["name"]})

			return err
		}).
		BuildDialog()
}

func (v *IngredientListView) bulkForm() *components.FormDialog {
	return components.NewFormBuilder("Add ingredients", ingredientsPath+"/bulk").
		AddMultilineField("names", "Names, separated by commas", "", true).
		SaveText("Add").
		OnSave(func(ctx context.Context, values map[string]string) error {
			_, err := v.list.BulkAdd(ctx, splitNames(values["names"]))

			return err
		}).
		BuildDialog()
}

func (v *IngredientListView) render(r *http.Request, dialog template.HTML) (*Page, error) {
	query := r.URL.Query().Get("q")

	ingredients, err := v.list.SearchByName(r.Context(), query)
	if err != nil {
		return nil, err
	}

	items := make([]template.HTML, 0, len(ingredients))
	for _, ingredient := range ingredients {
		items = append(items, components.ListItem(ingredient.Name, "", idPath(ingredientsPath, ingredient.ID)))
	}

	return renderPage("Ingredients", SectionIngredients, "ingredient-list", struct {
		Search      searchData
		NewButton   template.HTML
		BulkButton  template.HTML
		Ingredients listData
		Dialog      template.HTML
	}{
		Search: searchData{
			Action: ingredientsPath,
			Fields: []template.HTML{components.TextField("q", "Name", query, components.Placeholder("Search ingredients"))},
		},
		NewButton:   components.Button(string(components.IconAdd)+" New ingredient", components.Link(ingredientsPath+"?dialog=new"), components.VariantPrimary),
		BulkButton:  components.Button("Add several", components.Link(ingredientsPath+"?dialog=bulk"), components.VariantSecondary),
		Ingredients: listData{Items: items, Empty: "No ingredients found"},
		Dialog:      dialog,
	})
}

// splitNames splits a comma separated list, dropping blank entries.
func splitNames(value string) []string {
	var names []string

	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

type IngredientDetailView struct {
	viewModel *viewmodel.IngredientViewModel
}

func NewIngredientDetailView(viewModel *viewmodel.IngredientViewModel) *IngredientDetailView {
	return &IngredientDetailView{viewModel: viewModel}
}

func (v *IngredientDetailView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: ingredientsPath + "/:id", Handler: v.Show},
		{Method: http.MethodPost, Path: ingredientsPath + "/:id", Handler: v.Update},
		{Method: http.MethodPost, Path: ingredientsPath + "/:id/delete", Handler: v.Delete},
	}
}

func (v *IngredientDetailView) Show(r *http.Request) (*Page, error) {
	ingredient, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(ingredientsPath), err
	}

	var dialog template.HTML
	if r.URL.Query().Get("confirm") == "delete" {
		dialog = components.AlertDialog(
			"Delete ingredient",
			fmt.Sprintf("Delete %s?", ingredient.Name),
			"Delete",
			components.Post(idPath(ingredientsPath, ingredient.ID)+"/delete"),
			idPath(ingredientsPath, ingredient.ID),
		)
	}

	return v.render(r, v.editForm(ingredient), dialog)
}

func (v *IngredientDetailView) Update(r *http.Request) (*Page, error) {
	ingredient, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(ingredientsPath), err
	}

	form := v.editForm(ingredient)

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form, "")
	}

	return redirect(idPath(ingredientsPath, ingredient.ID)), nil
}

func (v *IngredientDetailView) Delete(r *http.Request) (*Page, error) {
	_, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(ingredientsPath), err
	}

	if err := v.viewModel.Delete(r.Context()); err != nil {
		return nil, err
	}

	return redirect(ingredientsPath), nil
}

func (v *IngredientDetailView) load(r *http.Request) (model.Ingredient, bool, error) {
	id, ok := readIDParam(r, "id")
	if !ok {
		return model.Ingredient{}, false, nil
	}

	if err := v.viewModel.Load(r.Context(), id); err != nil {
		return model.Ingredient{}, false, err
	}

	ingredient, ok := v.viewModel.Current()

	return ingredient, ok, nil
}

func (v *IngredientDetailView) editForm(ingredient model.Ingredient) *components.Form {
	return components.NewFormBuilder(ingredient.Name, idPath(ingredientsPath, ingredient.ID)).
		AddTextField("name", "Name", ingredient.Name, true).
		SaveText("Update").
		OnSave(func(ctx context.Context, values map[string]string) error {
			if err := v.viewModel.Modify(func(ingredient *model.Ingredient) {
				ingredient.Name = values["name"]
			}); err != nil {
				return err
			}

			return v.viewModel.Update(ctx)
		}).
		Build()
}

func (v *IngredientDetailView) render(r *http.Request, form *components.Form, dialog template.HTML) (*Page, error) {
	detail, err := v.viewModel.Detail(r.Context())
	if err != nil {
		return nil, err
	}

	dishes := make([]template.HTML, 0, len(detail.Dishes))
	for _, dish := range detail.Dishes {
		dishes = append(dishes, components.ListItem(dish.Name, dish.Description, idPath(dishesPath, dish.ID)))
	}

	self := idPath(ingredientsPath, detail.ID)

	return renderPage(detail.Name, SectionIngredients, "ingredient-detail", struct {
		Name         string
		BackButton   template.HTML
		DishesButton template.HTML
		DeleteButton template.HTML
		Form         template.HTML
		Dishes       listData
		Dialog       template.HTML
	}{
		Name:         detail.Name,
		BackButton:   components.Button("Back", components.Link(ingredientsPath), components.VariantSecondary),
		DishesButton: components.Button(string(components.IconSearch)+" Dishes", components.Link(fmt.Sprintf("%s?ingredient=%d", dishesPath, detail.ID)), components.VariantSecondary),
		DeleteButton: components.Button(string(components.IconDelete)+" Delete", components.Link(self+"?confirm=delete"), components.VariantDanger),
		Form:         form.Render(),
		Dishes:       listData{Items: dishes, Empty: "Not used in any dish"},
		Dialog:       dialog,
	})
}
