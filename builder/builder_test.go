package builder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/barmetric/builder"
	"github.com/katalvlaran/barmetric/matrix"
	"github.com/katalvlaran/barmetric/registry"
	"github.com/katalvlaran/barmetric/tree"
)

func vol(v float64) *float64 { return &v }

func half() *float64 { return vol(0.5) }

// spiritsTree: root ─ 1 ─┬ 2 ─┬ 4
//                        │    └ 5 (w=0.5)
//                        └ 3 (w=2)
//              root ─ 6 ─ 7
func spiritsTree(t *testing.T) *tree.Tree {
	t.Helper()
	tr, err := tree.Build([]tree.Record{
		{ID: "1", Name: "spirits", Path: "/1/"},
		{ID: "2", Name: "whiskey", Path: "/1/2/"},
		{ID: "4", Name: "bourbon", Path: "/1/2/4/"},
		{ID: "5", Name: "rye", Path: "/1/2/5/", Weight: vol(0.5)},
		{ID: "3", Name: "gin", Path: "/1/3/", Weight: vol(2)},
		{ID: "6", Name: "citrus", Path: "/6/"},
		{ID: "7", Name: "lime", Path: "/6/7/"},
	})
	require.NoError(t, err)

	return tr
}

func TestIngredientDistances(t *testing.T) {
	reg, d, err := builder.IngredientDistances(spiritsTree(t))
	require.NoError(t, err)
	require.NoError(t, reg.Validate(d.Rows()))
	assert.Equal(t, []string{"1", "6", "2", "3", "7", "4", "5"}, reg.IDs())
	assert.Equal(t, "bourbon", reg.Name(5))

	require.NoError(t, matrix.ValidateCostMatrix(d, 0))

	bourbon, _ := reg.Index("4")
	rye, _ := reg.Index("5")
	lime, _ := reg.Index("7")
	v, err := d.At(bourbon, rye)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v)

	v, err = d.At(rye, lime)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)
}

func TestIngredientDistances_Empty(t *testing.T) {
	_, _, err := builder.IngredientDistances(nil)
	assert.ErrorIs(t, err, builder.ErrEmptyTree)
}

func ingredients(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]registry.Entry{
		{ID: "4", Name: "bourbon"},
		{ID: "5", Name: "rye"},
		{ID: "3", Name: "gin"},
		{ID: "7", Name: "lime"},
	})
	require.NoError(t, err)

	return reg
}

func TestVolumeMatrix_DenseAndSparseAgree(t *testing.T) {
	records := []builder.RecipeIngredient{
		{RecipeID: "r2", RecipeName: "gimlet", IngredientID: "3", Volume: vol(0.75)},
		{RecipeID: "r1", RecipeName: "old fashioned", IngredientID: "4", Volume: vol(1)},
		{RecipeID: "r2", IngredientID: "7", Volume: vol(0.25)},
		{RecipeID: "r3", RecipeName: "split", IngredientID: "4", Volume: half()},
		{RecipeID: "r3", IngredientID: "5", Volume: vol(0.25)},
		{RecipeID: "r3", IngredientID: "5", Volume: vol(0.25)}, // repeated row is summed
	}

	recipes, dense, err := builder.VolumeMatrix(records, ingredients(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1", "r3"}, recipes.IDs())
	assert.Equal(t, "gimlet", recipes.Name(0))
	require.IsType(t, &matrix.Dense{}, dense)

	_, sparse, err := builder.VolumeMatrix(records, ingredients(t), builder.WithSparse())
	require.NoError(t, err)
	csr, ok := sparse.(*matrix.CSR)
	require.True(t, ok)
	assert.Equal(t, 5, csr.NNZ())

	for _, m := range []matrix.Matrix{dense, sparse} {
		row, err := matrix.ValidateRowStochastic(m, 1e-12)
		require.NoError(t, err, "row %d", row)
		v, err := m.At(2, 1)
		require.NoError(t, err)
		assert.Equal(t, 0.5, v)
	}
}

func TestVolumeMatrix_Normalize(t *testing.T) {
	records := []builder.RecipeIngredient{
		{RecipeID: "r", IngredientID: "3", Volume: vol(45)},
		{RecipeID: "r", IngredientID: "7", Volume: vol(15)},
	}
	_, _, err := builder.VolumeMatrix(records, ingredients(t))
	var rs *builder.RowSumInvariantError
	require.True(t, errors.As(err, &rs))
	assert.Equal(t, "r", rs.RecipeID)
	assert.Equal(t, 60.0, rs.Sum)
	assert.ErrorIs(t, err, builder.ErrRowSum)

	_, m, err := builder.VolumeMatrix(records, ingredients(t), builder.WithNormalize())
	require.NoError(t, err)
	v, err := m.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)
}

func TestVolumeMatrix_Tolerance(t *testing.T) {
	records := []builder.RecipeIngredient{
		{RecipeID: "r", IngredientID: "3", Volume: vol(0.999)},
	}
	_, _, err := builder.VolumeMatrix(records, ingredients(t))
	assert.ErrorIs(t, err, builder.ErrRowSum)

	_, _, err = builder.VolumeMatrix(records, ingredients(t), builder.WithTolerance(1e-2))
	assert.NoError(t, err)
}

func TestVolumeMatrix_Rejects(t *testing.T) {
	reg := ingredients(t)
	cases := []struct {
		name string
		recs []builder.RecipeIngredient
		want error
	}{
		{"no records", nil, builder.ErrNoRecipes},
		{"missing volume", []builder.RecipeIngredient{{RecipeID: "r", IngredientID: "3"}}, builder.ErrMissingVolume},
		{"negative volume", []builder.RecipeIngredient{{RecipeID: "r", IngredientID: "3", Volume: vol(-1)}}, builder.ErrInvalidVolume},
		{"unknown ingredient", []builder.RecipeIngredient{{RecipeID: "r", IngredientID: "99", Volume: vol(1)}}, builder.ErrUnknownIngredient},
		{"empty recipe id", []builder.RecipeIngredient{{IngredientID: "3", Volume: vol(1)}}, builder.ErrEmptyRecipeID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := builder.VolumeMatrix(tc.recs, reg)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, _, err := builder.VolumeMatrix([]builder.RecipeIngredient{{RecipeID: "r"}}, nil)
	assert.ErrorIs(t, err, builder.ErrNilRegistry)
}

func TestWithTolerance_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithTolerance(-1) })
}
