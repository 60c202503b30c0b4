package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"droscher.com/CookBook/pkg/model"
	"droscher.com/CookBook/pkg/repository"
)

type CookMockTestSuite struct {
	RepositorySuite
}

func TestCookMockTestSuite(t *testing.T) {
	suite.Run(t, new(CookMockTestSuite))
}

func (suite *CookMockTestSuite) TestFindOneOrNone_ReturnsNilWhenMissing() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "cooks" WHERE id = \$1 LIMIT \$2`).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bio"}))
	suite.mock.ExpectCommit()

	cook, err := repository.NewCooks(suite.repository).FindOneOrNone(context.Background(), 42)

	suite.Require().NoError(err)
	suite.Nil(cook)
}

func (suite *CookMockTestSuite) TestFindOneOrNone_FindsCook() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "cooks" WHERE id = \$1 LIMIT \$2`).
		WithArgs(7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bio"}).AddRow(7, "Julia", "French cooking"))
	suite.mock.ExpectCommit()

	cook, err := repository.NewCooks(suite.repository).FindOneOrNone(context.Background(), 7)

	suite.Require().NoError(err)
	suite.Require().NotNil(cook)
	suite.Equal(uint(7), cook.ID)
	suite.Equal("Julia", cook.Name)
	suite.Equal("French cooking", cook.Bio)
}

func (suite *CookMockTestSuite) TestGetTopCooks_LogsAndReturnsError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT cooks\.id, cooks\.name, cooks\.bio, count\(dishes\.id\) as dish_count FROM (.+) LEFT JOIN dishes on dishes\.cook_id = cooks\.id GROUP BY (.+) ORDER BY dish_count desc, cooks\.id asc LIMIT (.+)`).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	cooks, err := repository.NewCooks(suite.repository).GetTopCooks(context.Background(), 3)

	suite.Nil(cooks)
	suite.Require().EqualError(err, "connection reset")

	logged := suite.observedLogs.FilterMessage("error getting top cooks").All()
	suite.Require().Len(logged, 1)
	suite.Equal(int64(3), logged[0].ContextMap()["limit"])
}

type CookTestSuite struct {
	CatalogSuite
}

func TestCookTestSuite(t *testing.T) {
	suite.Run(t, new(CookTestSuite))
}

func (suite *CookTestSuite) addCook(name string) *model.Cook {
	cook, err := suite.cooks.Add(suite.ctx, model.Cook{Name: name, Bio: name + " bio"})
	suite.Require().NoError(err)

	return cook
}

func (suite *CookTestSuite) addDishes(cook *model.Cook, count int) {
	for i := 0; i < count; i++ {
		_, err := suite.dishes.Add(suite.ctx, model.Dish{Name: cook.Name + " dish", CookID: pointy.Uint(cook.ID)})
		suite.Require().NoError(err)
	}
}

func (suite *CookTestSuite) TestAdd_AssignsIdentityAndRoundTrips() {
	cook := suite.addCook("Auguste")

	suite.NotZero(cook.ID)

	found, err := suite.cooks.FindOneOrNone(suite.ctx, cook.ID)
	suite.Require().NoError(err)
	suite.Equal(cook, found)
}

func (suite *CookTestSuite) TestFindOneOrNone_MissingIsNil() {
	found, err := suite.cooks.FindOneOrNone(suite.ctx, 999)

	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *CookTestSuite) TestDeleteByID_MissingIsNoop() {
	suite.Require().NoError(suite.cooks.DeleteByID(suite.ctx, 999))
}

func (suite *CookTestSuite) TestFindByName_MatchesSubstringIgnoringCase() {
	suite.addCook("Gordon Ramsay")
	julia := suite.addCook("Julia Child")
	suite.addCook("Julian Barnes")

	found, err := suite.cooks.FindByName(suite.ctx, "JULIA")
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal(julia.ID, found.ID)

	all, err := suite.cooks.SearchByName(suite.ctx, "julia")
	suite.Require().NoError(err)
	suite.Len(all, 2)

	missing, err := suite.cooks.FindByName(suite.ctx, "nobody")
	suite.Require().NoError(err)
	suite.Nil(missing)
}

func (suite *CookTestSuite) TestUpdate_AppliesFieldsAndRefreshes() {
	cook := suite.addCook("Auguste")

	updated, err := suite.cooks.Update(suite.ctx, cook.ID, map[string]any{"bio": "Le roi des cuisiniers"})

	suite.Require().NoError(err)
	suite.Equal(cook.ID, updated.ID)
	suite.Equal("Auguste", updated.Name)
	suite.Equal("Le roi des cuisiniers", updated.Bio)
}

func (suite *CookTestSuite) TestUpdate_MissingFails() {
	updated, err := suite.cooks.Update(suite.ctx, 999, map[string]any{"name": "Nobody"})

	suite.Nil(updated)
	suite.Require().ErrorIs(err, repository.ErrNotFound)
}

func (suite *CookTestSuite) TestDelete_CascadesToDishes() {
	cook := suite.addCook("Auguste")
	other := suite.addCook("Julia")
	suite.addDishes(cook, 3)
	suite.addDishes(other, 1)

	suite.Require().NoError(suite.cooks.Delete(suite.ctx, *cook))

	dishes, err := suite.dishes.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(dishes, 1)
	suite.Equal(other.ID, *dishes[0].CookID)
}

func (suite *CookTestSuite) TestDelete_BlockedByDishIngredients() {
	cook := suite.addCook("Auguste")

	dish, err := suite.dishes.Add(suite.ctx, model.Dish{Name: "Bouillabaisse", CookID: pointy.Uint(cook.ID)})
	suite.Require().NoError(err)

	saffron, err := suite.ingredients.Add(suite.ctx, model.Ingredient{Name: "Saffron"})
	suite.Require().NoError(err)

	_, err = suite.dishes.AddOrUpdateIngredient(suite.ctx, dish.ID, saffron.ID, 0.5)
	suite.Require().NoError(err)

	suite.Require().Error(suite.cooks.Delete(suite.ctx, *cook))

	kept, err := suite.cooks.FindOneOrNone(suite.ctx, cook.ID)
	suite.Require().NoError(err)
	suite.NotNil(kept)

	keptDish, err := suite.dishes.FindOneOrNone(suite.ctx, dish.ID)
	suite.Require().NoError(err)
	suite.NotNil(keptDish)

	suite.Require().NoError(suite.dishes.RemoveIngredient(suite.ctx, dish.ID, saffron.ID))
	suite.Require().NoError(suite.cooks.Delete(suite.ctx, *cook))

	dishes, err := suite.dishes.FindAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Empty(dishes)
}

func (suite *CookTestSuite) TestDelete_MissingFails() {
	err := suite.cooks.Delete(suite.ctx, model.Cook{ID: 999})

	suite.Require().ErrorIs(err, repository.ErrNotFound)
}

func (suite *CookTestSuite) TestGetTopCooks_OrdersByDishCount() {
	counts := []int{5, 0, 3, 3, 1}
	cooks := make([]*model.Cook, 0, len(counts))

	for index, count := range counts {
		cook := suite.addCook(string(rune('A' + index)))
		suite.addDishes(cook, count)
		cooks = append(cooks, cook)
	}

	top, err := suite.cooks.GetTopCooks(suite.ctx, 3)
	suite.Require().NoError(err)
	suite.Require().Len(top, 3)

	suite.Equal(cooks[0].ID, top[0].ID)
	suite.Equal(int64(5), top[0].DishCount)
	suite.Equal(cooks[2].ID, top[1].ID)
	suite.Equal(int64(3), top[1].DishCount)
	suite.Equal(cooks[3].ID, top[2].ID)
	suite.Equal(int64(3), top[2].DishCount)

	all, err := suite.cooks.GetTopCooks(suite.ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(all, 5)
	suite.Equal(cooks[4].ID, all[3].ID)
	suite.Equal(cooks[1].ID, all[4].ID)
	suite.Equal(int64(0), all[4].DishCount)
	suite.Equal("B bio", all[4].Bio)
}

func (suite *CookTestSuite) TestGetDishesByCookID() {
	cook := suite.addCook("Auguste")
	suite.addDishes(cook, 2)

	dishes, err := suite.cooks.GetDishesByCookID(suite.ctx, cook.ID)
	suite.Require().NoError(err)
	suite.Len(dishes, 2)

	none, err := suite.cooks.GetDishesByCookID(suite.ctx, 999)
	suite.Require().NoError(err)
	suite.Empty(none)
}
