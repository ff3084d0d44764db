package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/flatroutes/pkg/routes"
	"github.com/fatih/color"
)

// jsonOutput is the global flag for JSON output mode
var jsonOutput bool

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	AppDir      string            `json:"app_dir"`
	Convention  string            `json:"convention"`
	Routes      *routes.Manifest  `json:"routes"`
	Collisions  []CollisionOutput `json:"collisions,omitempty"`
	TotalRoutes int               `json:"total_routes"`
}

// CollisionOutput represents one id or path collision in JSON output
type CollisionOutput struct {
	Kind    string   `json:"kind"`
	Key     string   `json:"key"`
	Kept    string   `json:"kept"`
	Dropped []string `json:"dropped"`
}

// GenerateOutput represents the JSON output for generate commands
type GenerateOutput struct {
	Command    string            `json:"command"`
	Format     string            `json:"format,omitempty"`
	Files      []string          `json:"files"`
	Pattern    string            `json:"pattern,omitempty"`
	Routes     int               `json:"routes,omitempty"`
	Collisions []CollisionOutput `json:"collisions,omitempty"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	File       string `json:"file"`
	AppDir     string `json:"app_dir"`
	Convention string `json:"convention"`
	Output     string `json:"output"`
	Format     string `json:"format"`
}

// ServeOutput represents the JSON output for the serve command
type ServeOutput struct {
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Routes int    `json:"routes"`
}

func collisionOutputs(cs []routes.Collision) []CollisionOutput {
	out := make([]CollisionOutput, 0, len(cs))
	for _, c := range cs {
		out = append(out, CollisionOutput{
			Kind:    string(c.Kind),
			Key:     c.Key,
			Kept:    c.Winner(),
			Dropped: c.Dropped(),
		})
	}
	return out
}

// printJSON outputs data as formatted JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}

// fail reports err in the active output mode and exits with status 1.
func fail(msg string, err error) {
	if jsonOutput {
		printJSONError(err)
	} else {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("  %s %s: %v\n\n", red("Error:"), msg, err)
	}
	os.Exit(1)
}

// printCollisions writes collision messages to stderr, as warnings.
func printCollisions(cs []routes.Collision) {
	if len(cs) == 0 {
		return
	}
	r := routes.NewWriterReporter(os.Stderr)
	for _, c := range cs {
		r.Report(c)
	}
}
