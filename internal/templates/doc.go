// Package templates holds the starter layouts written by `rendr init`.
//
// # Available Templates
//
//   - minimal: rendr.yaml only
//   - fixtures: rendr.yaml plus example trees for diff and render
//
// # Usage
//
//	tmpl, err := templates.Get("fixtures")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := tmpl.Create(dir, templates.Config{ProjectName: "site"}); err != nil {
//	    log.Fatal(err)
//	}
//
// # Template Variables
//
//	{{.ProjectName}}  - Name of the project
//	{{.Addr}}         - Live server address
//	{{.LogLevel}}     - Log level
package templates
