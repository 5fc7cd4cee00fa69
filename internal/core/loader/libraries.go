package loader

// Support libraries named in RequiredPackageNotAvailableError.
const (
	yamlLibrary = "go.yaml.in/yaml/v3"
	tomlLibrary = "github.com/pelletier/go-toml/v2"
)
