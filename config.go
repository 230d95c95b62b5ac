package worldbox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bodgit/worldbox/save"
	"github.com/bodgit/worldbox/tile"
)

// optionsFile is the YAML shape of a conversion options file. It is kept
// separate from Options so the save package stays purely the game's format
// contract.
type optionsFile struct {
	Tolerance int         `yaml:"tolerance"`
	Fallback  string      `yaml:"fallback"`
	Stats     statsConfig `yaml:"stats"`
}

type statsConfig struct {
	PlayerName    string `yaml:"player_name"`
	Population    int    `yaml:"population"`
	Deaths        int    `yaml:"deaths"`
	CreaturesBorn int    `yaml:"creatures_born"`
	WorldTime     int    `yaml:"world_time"`
}

// LoadOptions reads conversion options from a YAML file. Absent fields keep
// their zero defaults.
func LoadOptions(file string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(file)
	if err != nil {
		return opts, fmt.Errorf("worldbox: reading config %s: %w", file, err)
	}

	var cfg optionsFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return opts, fmt.Errorf("worldbox: parsing config %s: %w", file, err)
	}

	if cfg.Tolerance < 0 || cfg.Tolerance > 100 {
		return opts, fmt.Errorf("worldbox: tolerance %d is not between 0 and 100", cfg.Tolerance)
	}

	opts = Options{
		Tolerance: cfg.Tolerance,
		Fallback:  tile.TypeID(cfg.Fallback),
		Stats: save.Stats{
			PlayerName:    cfg.Stats.PlayerName,
			Population:    cfg.Stats.Population,
			Deaths:        cfg.Stats.Deaths,
			CreaturesBorn: cfg.Stats.CreaturesBorn,
			WorldTime:     cfg.Stats.WorldTime,
		},
	}

	return opts, nil
}
