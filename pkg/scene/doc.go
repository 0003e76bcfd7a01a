// Package scene reads and writes scene documents and layout results.
//
// # Overview
//
// A scene document describes one canvas container: its design size and the
// children laid out on it, each with design-space geometry, a depth and the
// scaling mode of every axis. Scenes are the configuration surface of the
// CLI, the watcher and the HTTP service; [Scene.Container] turns one into a
// validated [canvas.Container].
//
// # Formats
//
// Scenes are read from TOML, YAML or JSON. [ReadFile] picks the format from
// the file extension; [Read] and [Write] take it explicitly:
//
//	name = "dashboard"
//	design_width = 1920
//	design_height = 1080
//
//	[[children]]
//	id = "header"
//	width = 1920
//	height = 120
//	width_mode = "stretch"
//
//	[[children]]
//	id = "badge"
//	x = 1800
//	y = 20
//	width = 100
//	height = 100
//	depth = 10
//
// Scaling modes are "virtual" (the default) or "stretch". A child marked
// unmanaged is kept in the container but excluded from every pass.
//
// # Results
//
// [Result] is the export format of one layout pass: the constraints, the
// container size, the scales and every placement in back-to-front order.
// Results are what the pipeline caches and what the HTTP service returns.
//
// [canvas.Container]: github.com/matzehuels/canvaslayout/pkg/canvas.Container
package scene
