package tree_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/barmetric/tree"
)

func weight(w float64) *float64 { return &w }

// cocktailRecords is a small spirits hierarchy:
//
//	root ─ 1 spirits ─┬ 2 whiskey ─┬ 4 bourbon
//	                  │            └ 5 rye (w=0.5)
//	                  └ 3 gin
//	root ─ 6 citrus ─ 7 lime
func cocktailRecords() []tree.Record {
	return []tree.Record{
		{ID: "1", Name: "spirits", Path: "/1/"},
		{ID: "2", Name: "whiskey", Path: "/1/2/"},
		{ID: "4", Name: "bourbon", Path: "/1/2/4/"},
		{ID: "5", Name: "rye", Path: "/1/2/5/", Weight: weight(0.5)},
		{ID: "3", Name: "gin", Path: "/1/3/", Weight: weight(2)},
		{ID: "7", Name: "lime", Path: "/6/7/"},
		{ID: "6", Name: "citrus", Path: "/6/"},
	}
}

type TreeSuite struct {
	suite.Suite
	t *tree.Tree
}

func (s *TreeSuite) SetupTest() {
	var err error
	s.t, err = tree.Build(cocktailRecords())
	s.Require().NoError(err)
}

// TestSelfDistanceIsZero covers every node including the root.
func (s *TreeSuite) TestSelfDistanceIsZero() {
	ids := append(s.t.Ingredients(), tree.RootID)
	for _, id := range ids {
		d, err := s.t.Distance(id, id)
		s.Require().NoError(err)
		s.Equal(0.0, d, id)
	}
}

// TestSymmetry checks Distance(u,v) == Distance(v,u) for all pairs.
func (s *TreeSuite) TestSymmetry() {
	ids := s.t.Ingredients()
	for _, u := range ids {
		for _, v := range ids {
			duv, err := s.t.Distance(u, v)
			s.Require().NoError(err)
			dvu, err := s.t.Distance(v, u)
			s.Require().NoError(err)
			s.Equal(duv, dvu, "%s/%s", u, v)
		}
	}
}

// TestKnownDistances checks LCA sums with explicit and default weights.
func (s *TreeSuite) TestKnownDistances() {
	cases := []struct {
		u, v string
		want float64
	}{
		{"4", "5", 1.5},         // siblings under whiskey
		{"4", "3", 1 + 1 + 2},   // bourbon→whiskey→spirits←gin
		{"5", "7", 0.5 + 1 + 1 + 1 + 1},
		{"2", "4", 1},           // ancestor/descendant
		{tree.RootID, "5", 2.5}, // root to rye
	}
	for _, c := range cases {
		d, err := s.t.Distance(c.u, c.v)
		s.Require().NoError(err)
		s.InDelta(c.want, d, 1e-12, "%s-%s", c.u, c.v)
	}
}

// TestIngredientsOrder excludes the root and is breadth-first by numeric id.
func (s *TreeSuite) TestIngredientsOrder() {
	s.Equal([]string{"1", "6", "2", "3", "7", "4", "5"}, s.t.Ingredients())
	s.Equal(7, s.t.Len())
}

// TestParentMap checks the root entry and an explicit weight.
func (s *TreeSuite) TestParentMap() {
	pm := s.t.ParentMap()
	s.Equal(tree.ParentEdge{}, pm[tree.RootID])
	s.Equal(tree.ParentEdge{Parent: "2", HasParent: true, Weight: 0.5}, pm["5"])
	s.Equal(tree.ParentEdge{Parent: tree.RootID, HasParent: true, Weight: 1}, pm["6"])
}

// TestNamesFromOwningRecord verifies that "6" picks up its name even though
// its child was seen first.
func (s *TreeSuite) TestNamesFromOwningRecord() {
	n, ok := s.t.Node("6")
	s.Require().True(ok)
	s.Equal("citrus", n.Name)
	s.Equal(1, n.Depth)
}

func TestTreeSuite(t *testing.T) {
	suite.Run(t, new(TreeSuite))
}

func TestChainDistances(t *testing.T) {
	tr, err := tree.Build([]tree.Record{
		{ID: "1", Name: "a", Path: "/1/", Weight: weight(1)},
		{ID: "2", Name: "b", Path: "/1/2/", Weight: weight(1)},
	})
	require.NoError(t, err)

	d, err := tr.Distance("1", "2")
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	d, err = tr.Distance(tree.RootID, "2")
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)
}

func TestLaterExplicitWeightOverridesDefault(t *testing.T) {
	tr, err := tree.Build([]tree.Record{
		{ID: "2", Name: "child", Path: "/1/2/"},
		{ID: "1", Name: "parent", Path: "/1/", Weight: weight(3)},
	}, tree.WithDefaultWeight(0.25))
	require.NoError(t, err)

	d, err := tr.Distance(tree.RootID, "2")
	require.NoError(t, err)
	assert.Equal(t, 3.25, d)
}

func TestBuildMalformedPaths(t *testing.T) {
	bad := []tree.Record{
		{ID: "1", Path: ""},
		{ID: "1", Path: "/"},
		{ID: "1", Path: "/a/1/"},
		{ID: "1", Path: "/1/-2/"},
		{ID: "3", Path: "/1/2/"},
		{ID: "x", Path: "/1/"},
	}
	for _, rec := range bad {
		_, err := tree.Build([]tree.Record{rec})
		require.Error(t, err, rec.Path)
		assert.ErrorIs(t, err, tree.ErrMalformedPath, rec.Path)

		var mpe *tree.MalformedPathError
		assert.True(t, errors.As(err, &mpe))
		assert.Equal(t, rec.Path, mpe.Path)
	}
}

func TestBuildConflictingParent(t *testing.T) {
	_, err := tree.Build([]tree.Record{
		{ID: "3", Path: "/1/3/"},
		{ID: "3", Path: "/2/3/"},
	})
	assert.ErrorIs(t, err, tree.ErrMalformedPath)
}

func TestBuildCanonicalizesIDs(t *testing.T) {
	tr, err := tree.Build([]tree.Record{{ID: "05", Path: "/01/005/"}})
	require.NoError(t, err)
	assert.True(t, tr.Has("5"))
	assert.True(t, tr.Has("1"))
}

func TestBuildInvalidWeight(t *testing.T) {
	_, err := tree.Build([]tree.Record{{ID: "1", Path: "/1/", Weight: weight(-1)}})
	assert.ErrorIs(t, err, tree.ErrInvalidWeight)
	assert.Panics(t, func() { tree.WithDefaultWeight(-1) })
}

func TestDistanceUnknownNode(t *testing.T) {
	tr, err := tree.Build(cocktailRecords())
	require.NoError(t, err)
	_, err = tr.Distance("1", "999")
	assert.ErrorIs(t, err, tree.ErrUnknownNode)
	_, err = tr.Depth("999")
	assert.ErrorIs(t, err, tree.ErrUnknownNode)
}

func TestDeepChainIsIterative(t *testing.T) {
	const depth = 20000
	var path strings.Builder
	path.WriteString("/")
	for i := 1; i <= depth; i++ {
		path.WriteString(strconv.Itoa(i))
		path.WriteString("/")
	}
	last := strconv.Itoa(depth)

	tr, err := tree.Build([]tree.Record{{ID: last, Path: path.String()}})
	require.NoError(t, err)
	d, err := tr.Distance(tree.RootID, last)
	require.NoError(t, err)
	assert.Equal(t, float64(depth), d)
}
