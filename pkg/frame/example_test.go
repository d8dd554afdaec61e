package frame_test

import (
	"fmt"
	"log"

	"github.com/ajitpratap0/nebulaframe/pkg/frame"
)

// ExampleNew demonstrates building a table from an index and two columns.
func ExampleNew() {
	tbl := frame.New[int](frame.WithName("quotes"))

	if _, err := tbl.LoadIndex([]int{1, 2, 3}); err != nil {
		log.Fatal(err)
	}
	if _, err := frame.LoadColumn(tbl, "price", []float64{10.5, 11.0, 9.75}, frame.PadWithNaNs); err != nil {
		log.Fatal(err)
	}
	if _, err := frame.LoadColumn(tbl, "ticker", []string{"A", "B"}, frame.PadWithNaNs); err != nil {
		log.Fatal(err)
	}

	rows, cols := tbl.Shape()
	fmt.Println(rows, cols)
	for _, info := range tbl.ColumnsInfo() {
		fmt.Println(info.Name, info.Len, info.Type)
	}

	// Output:
	// 3 2
	// price 3 float
	// ticker 3 string
}

// ExampleSelectBy1 shows filtering rows on a single column.
func ExampleSelectBy1() {
	tbl := frame.New[int]()
	_, _ = tbl.LoadIndex([]int{1, 2, 3, 4})
	_, _ = frame.LoadColumn(tbl, "x", []float64{1, 5, 2, 8}, frame.PadWithNaNs)

	out, err := frame.SelectBy1(tbl, "x", func(_ int, x float64) bool { return x > 1.5 })
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Index())

	// Output:
	// [2 3 4]
}

// ExampleTable_ViewByLoc shows that writes through a view land in the parent.
func ExampleTable_ViewByLoc() {
	tbl := frame.New[int]()
	_, _ = tbl.LoadIndex([]int{1, 2, 3})
	_, _ = frame.LoadColumn(tbl, "v", []int{10, 20, 30}, frame.PadWithNaNs)

	view, err := tbl.ViewByLoc(1, 2)
	if err != nil {
		log.Fatal(err)
	}
	col, err := frame.WriteColumn[int](view, "v")
	if err != nil {
		log.Fatal(err)
	}
	_ = col.Set(0, 200)

	v, _ := frame.GetColumn[int](tbl, "v")
	fmt.Println(v.Values())

	// Output:
	// [10 200 30]
}

// ExampleTable_RemoveDuplicates keeps the last row of each duplicate group.
func ExampleTable_RemoveDuplicates() {
	tbl := frame.New[int]()
	_, _ = tbl.LoadIndex([]int{1, 2, 3, 4})
	_, _ = frame.LoadColumn(tbl, "k", []string{"a", "b", "a", "c"}, frame.PadWithNaNs)

	out, err := tbl.RemoveDuplicates([]string{"k"}, false, frame.KeepLast)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out.Index())

	// Output:
	// [2 3 4]
}

// ExampleGenerateSequence builds an evenly spaced index.
func ExampleGenerateSequence() {
	seq, err := frame.GenerateSequence(0.5, 4, 0.25)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(seq)

	// Output:
	// [0.5 0.75 1 1.25]
}
