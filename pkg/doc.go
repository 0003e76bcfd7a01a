// Package pkg provides the libraries behind canvaslayout.
//
// # Overview
//
// Canvaslayout places the children of a fixed-design container on a viewport
// of arbitrary size. Each child is authored in design pixels and chooses, per
// axis, whether it follows the uniform virtual scale or the non-uniform
// stretch scale. A layout pass resolves both scales from the container's
// width and height constraints, places every child and orders them
// back-to-front by depth.
//
// # Architecture
//
// The typical data flow:
//
//	scene document (TOML / YAML / JSON)
//	         ↓
//	    [scene] package (decode, validate, build a container)
//	         ↓
//	    [canvas] package (resolve scales → place children → order by depth)
//	         ↓
//	    [pipeline] package (cache lookup, pass, result export)
//	         ↓
//	    CLI table, result JSON or HTTP response
//
// # Quick Start
//
//	c, _ := canvas.New(canvas.DesignSize{Width: 100, Height: 100})
//	_ = c.Add("badge", &canvas.ChildSpec{X: 30, Y: 30, Width: 50, Height: 50, Depth: 15})
//
//	res := c.Pass(canvas.Exact(200), canvas.Exact(100))
//	for _, p := range res.Placements {
//	    fmt.Println(p.ID, p.Rect)
//	}
//
// # Main Packages
//
// [canvas] - The layout core: constraints, scale resolution, child
// placement, depth ordering and the Container that runs passes.
//
// [scene] - Scene documents and the exported Result format.
//
// [pipeline] - Runner that hashes scenes, consults the cache and runs
// passes, alone or in parallel across many sizes.
//
// [cache] - Result caches: null, file system and Redis.
//
// [server] - HTTP service exposing layout passes.
//
// [watcher] - Debounced file watching for live re-layout.
//
// [observability] - Hooks around passes, cache access and HTTP requests.
//
// [errors] - Coded errors shared by every package.
//
// [canvas]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/canvas
// [scene]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/server
// [watcher]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/watcher
// [observability]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/canvaslayout/pkg/errors
package pkg
