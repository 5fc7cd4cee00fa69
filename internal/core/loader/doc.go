// Package loader parses configuration files into layers.
//
// The parser is chosen from the file suffix through a Registry:
//
//	.json         JSON
//	.yml, .yaml   YAML, with !include directives
//	.toml         TOML
//
// Suffix matching is exact, so "config.JSON" has no loader. YAML and TOML
// support can be compiled out with the noyaml and notoml build tags, in
// which case loading such a file fails with a
// RequiredPackageNotAvailableError instead of an unknown-suffix error.
//
// A YAML scalar tagged !include is replaced by the deep merge of the files
// it names:
//
//	defaults: !include base.yaml, conf.d/**/*.yaml, !conf.d/local/*.yaml
//
// Tokens are comma separated glob patterns relative to the including file;
// a leading "!" marks an exclusion. A directive whose first pattern starts
// with "*" must be quoted, since a plain YAML scalar cannot begin with an
// alias marker: !include "*.yaml". Matches are canonicalized and merged in
// lexicographic order. Included YAML files may include further files, and a
// file that includes itself fails with an IncludeCycleError.
package loader
