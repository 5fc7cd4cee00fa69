//go:build notoml

package loader

func tomlHandler() Handler {
	return Handler{
		Format:   FormatTOML,
		Suffixes: []string{".toml"},
		Library:  tomlLibrary,
	}
}
