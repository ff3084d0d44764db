// Command flatroutes compiles file-based route modules into a route manifest.
package main

import "github.com/abdul-hamid-achik/flatroutes/cmd/flatroutes/commands"

func main() {
	commands.Execute()
}
