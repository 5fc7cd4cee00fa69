//go:build noyaml

package loader

func yamlHandler() Handler {
	return Handler{
		Format:   FormatYAML,
		Suffixes: []string{".yml", ".yaml"},
		Library:  yamlLibrary,
	}
}
