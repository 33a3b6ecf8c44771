// Package document documents the templates of a project.
//
// A project keeps its documentation in a "documentary" folder at its root.
// Every documented template has a directory there at the same relative
// path, holding up to three source documents and its fragments:
//
//	src/preg.php                                 the template
//	documentary/src/preg.php/declaration.json    method signatures
//	documentary/src/preg.php/decorations.json    cross references
//	documentary/src/preg.php/definitions.yaml    prose
//	documentary/src/preg.php/fragments/          fallback prose
//	documentary/project/fragment/                project-wide fallback prose
//
// Source documents may be JSON (with comments and trailing commas) or YAML.
//
// A [Documenter] loads the details of a template, replaces its markers with
// rendered comments and writes the result when it changed:
//
//	d := document.NewDocumenter(root)
//	outcomes, err := d.DocumentAll(ctx, "src")
//
// Use [Config] to build a [Documenter] from CLI flags and the optional
// [ConfigFile] at the project root.
package document
