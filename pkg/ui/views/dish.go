package views

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"go.openly.dev/pointy"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/ui/components"
	"droscher.com/CookBook/pkg/viewmodel"
)

const dishesPath = "/dishes"

type DishListView struct {
	list *viewmodel.DishListViewModel
}

func NewDishListView(list *viewmodel.DishListViewModel) *DishListView {
	return &DishListView{list: list}
}

func (v *DishListView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: dishesPath, Handler: v.Show},
		{Method: http.MethodPost, Path: dishesPath, Handler: v.Create},
		{Method: http.MethodPost, Path: dishesPath + "/import", Handler: v.Import},
	}
}

func (v *DishListView) Show(r *http.Request) (*Page, error) {
	var (
		dialog template.HTML
		err    error
	)

	switch r.URL.Query().Get("dialog") {
	case "new":
		var form *components.FormDialog
		if form, err = v.newDishForm(r.Context()); err != nil {
			return nil, err
		}

		dialog = form.Render()
	case "import":
		dialog = v.importForm(nil).Render()
	}

	return v.render(r, dialog)
}

func (v *DishListView) Create(r *http.Request) (*Page, error) {
	form, err := v.newDishForm(r.Context())
	if err != nil {
		return nil, err
	}

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form.Render())
	}

	return redirect(dishesPath), nil
}

func (v *DishListView) Import(r *http.Request) (*Page, error) {
	var imported *model.Dish

	form := v.importForm(&imported)

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form.Render())
	}

	if imported == nil {
		return redirect(dishesPath), nil
	}

	return redirect(idPath(dishesPath, imported.ID)), nil
}

func (v *DishListView) newDishForm(ctx context.Context) (*components.FormDialog, error) {
	cooks, err := v.list.AvailableCooks(ctx)
	if err != nil {
		return nil, err
	}

	return components.NewFormBuilder("New dish", dishesPath).
		AddTextField("name", "Name", "", true).
		AddMultilineField("description", "Description", "", false).
		AddMultilineField("recipe", "Recipe", "", false).
		AddTextField("image_url", "Image URL", "", false).
		AddDropdown("cook_id", "Cook", cookOptions(cooks), "", false).
		OnSave(func(ctx context.Context, values map[string]string) error {
			dish := model.Dish{
				Name:        values["name"],
				Description: values["description"],
				Recipe:      values["recipe"],
			}

			if values["image_url"] != "" {
				dish.ImageURL = pointy.String(values["image_url"])
			}

			if id, ok := parseID(values["cook_id"]); ok {
				dish.CookID = pointy.Uint(id)
			}

			_, err := v.list.Add(ctx, &dish)

			return err
		}).
		BuildDialog(), nil
}

func (v *DishListView) importForm(imported **model.Dish) *components.FormDialog {
	return components.NewFormBuilder("Import dish", dishesPath+"/import").
		AddTextField("url", "Recipe URL", "", true).
		SaveText("Import").
		OnSave(func(ctx context.Context, values map[string]string) error {
			dish, err := v.list.ImportFromURL(ctx, values["url"])
			if err != nil {
				return err
			}

			if imported != nil {
				*imported = dish
			}

			return nil
		}).
		BuildDialog()
}

// render shows the dishes using the ingredient query parameter when it names an ingredient,
// otherwise the dishes matching the name query. A malformed ingredient id is ignored.
func (v *DishListView) render(r *http.Request, dialog template.HTML) (*Page, error) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	ingredientParam := r.URL.Query().Get("ingredient")

	ingredients, err := v.list.AvailableIngredients(ctx)
	if err != nil {
		return nil, err
	}

	var (
		dishes   []model.Dish
		filtered string
	)

	if ingredientID, ok := parseID(ingredientParam); ok {
		dishes, err = v.list.FilterByIngredient(ctx, ingredientID)
		filtered = ingredientName(ingredients, ingredientID)
	} else {
		dishes, err = v.list.SearchByName(ctx, query)
	}

	if err != nil {
		return nil, err
	}

	cards := make([]template.HTML, 0, len(dishes))
	for _, dish := range dishes {
		cards = append(cards, components.Card(dish.Name, dish.Description, optionalString(dish.ImageURL), idPath(dishesPath, dish.ID)))
	}

	return renderPage("Dishes", SectionDishes, "dish-list", struct {
		Search       searchData
		NewButton    template.HTML
		ImportButton template.HTML
		Filtered     string
		Dishes       []template.HTML
		Dialog       template.HTML
	}{
		Search: searchData{
			Action: dishesPath,
			Fields: []template.HTML{
				components.TextField("q", "Name", query, components.Placeholder("Search dishes")),
				components.Dropdown("ingredient", "Ingredient", ingredientOptions(ingredients), ingredientParam),
			},
		},
		NewButton:    components.Button(string(components.IconAdd)+" New dish", components.Link(dishesPath+"?dialog=new"), components.VariantPrimary),
		ImportButton: components.Button(string(components.IconDownload)+" Import", components.Link(dishesPath+"?dialog=import"), components.VariantSecondary),
		Filtered:     filtered,
		Dishes:       cards,
		Dialog:       dialog,
	})
}

func ingredientName(ingredients []model.Ingredient, id uint) string {
	for _, ingredient := range ingredients {
		if ingredient.ID == id {
			return ingredient.Name
		}
	}

	return "ingredient " + strconv.FormatUint(uint64(id), 10)
}

type DishDetailView struct {
	viewModel *viewmodel.DishViewModel
}

func NewDishDetailView(viewModel *viewmodel.DishViewModel) *DishDetailView {
	return &DishDetailView{viewModel: viewModel}
}

func (v *DishDetailView) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: dishesPath + "/:id", Handler: v.Show},
		{Method: http.MethodPost, Path: dishesPath + "/:id", Handler: v.Update},
		{Method: http.MethodPost, Path: dishesPath + "/:id/delete", Handler: v.Delete},
		{Method: http.MethodPost, Path: dishesPath + "/:id/cook", Handler: v.SetCook},
		{Method: http.MethodPost, Path: dishesPath + "/:id/ingredients", Handler: v.AddIngredient},
		{Method: http.MethodPost, Path: dishesPath + "/:id/ingredients/:ingredient/delete", Handler: v.RemoveIngredient},
	}
}

func (v *DishDetailView) Show(r *http.Request) (*Page, error) {
	dish, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	var dialog template.HTML
	if r.URL.Query().Get("confirm") == "delete" {
		dialog = components.AlertDialog(
			"Delete dish",
			fmt.Sprintf("Delete %s?", dish.Name),
			"Delete",
			components.Post(idPath(dishesPath, dish.ID)+"/delete"),
			idPath(dishesPath, dish.ID),
		)
	}

	return v.render(r, v.editForm(dish), dialog)
}

func (v *DishDetailView) Update(r *http.Request) (*Page, error) {
	dish, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	form := v.editForm(dish)

	saved, err := submitForm(r, form)
	if err != nil {
		return nil, err
	}

	if !saved {
		return v.render(r, form, "")
	}

	return redirect(idPath(dishesPath, dish.ID)), nil
}

func (v *DishDetailView) Delete(r *http.Request) (*Page, error) {
	_, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	if err := v.viewModel.Delete(r.Context()); err != nil {
		return nil, err
	}

	return redirect(dishesPath), nil
}

// SetCook changes the owner of the dish. An empty selection removes the owner and a malformed
// one is ignored.
func (v *DishDetailView) SetCook(r *http.Request) (*Page, error) {
	dish, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	self := redirect(idPath(dishesPath, dish.ID))

	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	var cookID *uint

	if value := r.PostForm.Get("cook_id"); value != "" {
		id, ok := parseID(value)
		if !ok {
			return self, nil
		}

		cookID = &id
	}

	if err := v.viewModel.SetDishCook(r.Context(), cookID); err != nil {
		return nil, err
	}

	return self, nil
}

// AddIngredient adds an ingredient to the dish or changes its weight. Malformed ids or weights
// are ignored.
func (v *DishDetailView) AddIngredient(r *http.Request) (*Page, error) {
	dish, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	self := redirect(idPath(dishesPath, dish.ID))

	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	ingredientID, ok := parseID(r.PostForm.Get("ingredient_id"))
	if !ok {
		return self, nil
	}

	weight, ok := parseWeight(r.PostForm.Get("weight"))
	if !ok {
		return self, nil
	}

	if err := v.viewModel.AddOrUpdateIngredient(r.Context(), ingredientID, weight); err != nil {
		return nil, err
	}

	return self, nil
}

func (v *DishDetailView) RemoveIngredient(r *http.Request) (*Page, error) {
	dish, ok, err := v.load(r)
	if err != nil || !ok {
		return redirect(dishesPath), err
	}

	self := redirect(idPath(dishesPath, dish.ID))

	ingredientID, ok := readIDParam(r, "ingredient")
	if !ok {
		return self, nil
	}

	if err := v.viewModel.RemoveIngredient(r.Context(), ingredientID); err != nil {
		return nil, err
	}

	return self, nil
}

func (v *DishDetailView) load(r *http.Request) (model.Dish, bool, error) {
	id, ok := readIDParam(r, "id")
	if !ok {
		return model.Dish{}, false, nil
	}

	if err := v.viewModel.Load(r.Context(), id); err != nil {
		return model.Dish{}, false, err
	}

	dish, ok := v.viewModel.Current()

	return dish, ok, nil
}

func (v *DishDetailView) editForm(dish model.Dish) *components.Form {
	return components.NewFormBuilder(dish.Name, idPath(dishesPath, dish.ID)).
		AddTextField("name", "Name", dish.Name, true).
		AddMultilineField("description", "Description", dish.Description, false).
		AddMultilineField("recipe", "Recipe", dish.Recipe, false).
		AddTextField("image_url", "Image URL", optionalString(dish.ImageURL), false).
		SaveText("Update").
		OnSave(func(ctx context.Context, values map[string]string) error {
			if err := v.viewModel.Modify(func(dish *model.Dish) {
				dish.Name = values["name"]
				dish.Description = values["description"]
				dish.Recipe = values["recipe"]
				dish.ImageURL = nil

				if values["image_url"] != "" {
					dish.ImageURL = pointy.String(values["image_url"])
				}
			}); err != nil {
				return err
			}

			return v.viewModel.Update(ctx)
		}).
		Build()
}

func (v *DishDetailView) render(r *http.Request, form *components.Form, dialog template.HTML) (*Page, error) {
	ctx := r.Context()

	detail, err := v.viewModel.Detail(ctx)
	if err != nil {
		return nil, err
	}

	cooks, err := v.viewModel.AvailableCooks(ctx)
	if err != nil {
		return nil, err
	}

	ingredients, err := v.viewModel.AvailableIngredients(ctx)
	if err != nil {
		return nil, err
	}

	self := idPath(dishesPath, detail.ID)

	rows := make([]template.HTML, 0, len(detail.Ingredients))
	for _, ingredient := range detail.Ingredients {
		rows = append(rows, components.ListItem(
			ingredient.Name,
			strconv.FormatFloat(ingredient.Weight, 'f', -1, 64)+" g",
			idPath(ingredientsPath, ingredient.ID),
			components.IconButton(components.IconClose, "Remove "+ingredient.Name, components.Post(idPath(self+"/ingredients", ingredient.ID)+"/delete")),
		))
	}

	return renderPage(detail.Name, SectionDishes, "dish-detail", struct {
		Name             string
		BackButton       template.HTML
		DeleteButton     template.HTML
		Image            template.HTML
		Form             template.HTML
		CookAction       string
		CookField        template.HTML
		IngredientAction string
		IngredientField  template.HTML
		WeightField      template.HTML
		Ingredients      listData
		Dialog           template.HTML
	}{
		Name:             detail.Name,
		BackButton:       components.Button("Back", components.Link(dishesPath), components.VariantSecondary),
		DeleteButton:     components.Button(string(components.IconDelete)+" Delete", components.Link(self+"?confirm=delete"), components.VariantDanger),
		Image:            components.Card(detail.Name, "", detail.ImageURL, self),
		Form:             form.Render(),
		CookAction:       self + "/cook",
		CookField:        components.Dropdown("cook_id", "Cook", cookOptions(cooks), optionalID(detail.CookID)),
		IngredientAction: self + "/ingredients",
		IngredientField:  components.Dropdown("ingredient_id", "Ingredient", ingredientOptions(ingredients), "", components.Required()),
		WeightField:      components.NumberField("weight", "Weight", "0", components.Required()),
		Ingredients:      listData{Items: rows, Empty: "No ingredients yet"},
		Dialog:           dialog,
	})
}
