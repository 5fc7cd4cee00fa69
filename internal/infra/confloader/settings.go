package confloader

// Settings are the per-application defaults of a Loader.
type Settings struct {
	// PathEnvVar names the environment variable that may hold the path of
	// the configuration file.
	PathEnvVar string
	// DefaultPath is used when neither an explicit path nor PathEnvVar is
	// set. It may be missing.
	DefaultPath string
	// EnvPrefix restricts the environment layer to PREFIX__ variables.
	// Empty means every variable.
	EnvPrefix string
	// LoadFile replaces format dispatch when set. A nil result is an empty
	// layer.
	LoadFile func(path string) (map[string]any, error)
}

// Override returns s with every non-zero field of child applied on top.
func (s Settings) Override(child Settings) Settings {
	if child.PathEnvVar != "" {
		s.PathEnvVar = child.PathEnvVar
	}
	if child.DefaultPath != "" {
		s.DefaultPath = child.DefaultPath
	}
	if child.EnvPrefix != "" {
		s.EnvPrefix = child.EnvPrefix
	}
	if child.LoadFile != nil {
		s.LoadFile = child.LoadFile
	}
	return s
}
