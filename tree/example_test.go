package tree_test

import (
	"fmt"

	"github.com/katalvlaran/barmetric/tree"
)

// ExampleTree_Distance builds a two-branch hierarchy and measures the
// distance between two whiskeys and between a whiskey and a gin.
func ExampleTree_Distance() {
	w := 0.5
	t, err := tree.Build([]tree.Record{
		{ID: "1", Name: "spirits", Path: "/1/"},
		{ID: "2", Name: "whiskey", Path: "/1/2/"},
		{ID: "3", Name: "bourbon", Path: "/1/2/3/"},
		{ID: "4", Name: "rye", Path: "/1/2/4/", Weight: &w},
		{ID: "5", Name: "gin", Path: "/1/5/"},
	})
	if err != nil {
		panic(err)
	}

	d1, _ := t.Distance("3", "4")
	d2, _ := t.Distance("3", "5")
	fmt.Println(d1, d2)
	// Output:
	// 1.5 3
}
