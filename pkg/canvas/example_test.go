package canvas_test

import (
	"fmt"

	"github.com/matzehuels/canvaslayout/pkg/canvas"
)

func ExampleContainer_Pass() {
	c, _ := canvas.New(canvas.DesignSize{Width: 100, Height: 100})
	_ = c.Add("base", &canvas.ChildSpec{Width: 50, Height: 50})
	_ = c.Add("badge", &canvas.ChildSpec{X: 30, Y: 30, Width: 50, Height: 50, Depth: 15})

	res := c.Pass(canvas.Exact(200), canvas.Exact(100))
	fmt.Println("size:", res.Size.Width, res.Size.Height)
	for _, p := range res.Placements {
		fmt.Println(p.ID, p.Rect)
	}
	// Output:
	// size: 200 100
	// base (50,0)-(100,50)
	// badge (80,30)-(130,80)
}

func ExampleResolve() {
	res := canvas.Resolve(canvas.Exact(200), canvas.Exact(100), canvas.DesignSize{Width: 100, Height: 100})
	s := res.Scales
	fmt.Printf("stretch=%gx%g virtual=%g padding=%d,%d\n", s.StretchX, s.StretchY, s.Virtual(), s.PaddingX, s.PaddingY)
	// Output:
	// stretch=2x1 virtual=1 padding=50,0
}

func ExampleOrderByDepth() {
	ids := canvas.OrderByDepth([]canvas.Layer{
		{ID: "overlay", Depth: 10},
		{ID: "background", Depth: -1},
		{ID: "card", Depth: 0},
		{ID: "shadow", Depth: 0},
	})
	fmt.Println(ids)
	// Output:
	// [background card shadow overlay]
}

func ExampleParseConstraintPair() {
	w, h, err := canvas.ParseConstraintPair("exact:200xatmost:100")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(w, h)
	// Output:
	// exact:200 atmost:100
}
