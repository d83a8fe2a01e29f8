// place-in-regions evaluates a placement script and emits the result as
// JSON: placed bar groups, preview meshes and script errors. This is
// the surface a CAD host panel consumes; the richer terminal interface
// lives in cmd/placeregions.
package main

import (
	"encoding/json"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: place-in-regions <script>")
		os.Exit(2)
	}
	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := NewApp()
	result := app.Evaluate(string(src))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
