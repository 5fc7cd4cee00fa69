package command

import (
	"github.com/urfave/cli/v2"

	"github.com/azimuth-cloud/configomatic/internal/core/loader"
)

// formatInfo describes one supported file format.
type formatInfo struct {
	Format    string   `json:"format" yaml:"format" toml:"format"`
	Suffixes  []string `json:"suffixes" yaml:"suffixes" toml:"suffixes"`
	Library   string   `json:"library" yaml:"library" toml:"library"`
	Available bool     `json:"available" yaml:"available" toml:"available"`
}

// FormatsCommand returns the formats command.
func FormatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "formats",
		Usage:  "List configuration file formats and whether this build supports them",
		Action: formatsAction,
	}
}

func formatsAction(c *cli.Context) error {
	return render(c, formatInfos(loader.DefaultRegistry()))
}

func formatInfos(reg *loader.Registry) []formatInfo {
	handlers := reg.Handlers()
	out := make([]formatInfo, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, formatInfo{
			Format:    string(h.Format),
			Suffixes:  h.Suffixes,
			Library:   h.Library,
			Available: h.Available,
		})
	}
	return out
}
