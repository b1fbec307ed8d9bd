package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// VenueFile is the on-disk venue layout, e.g.
//
//	rows = 10
//	columns = 50
//	hold_duration = "90s"
//
// Zero or empty fields leave the environment values in place.
type VenueFile struct {
	Rows         int    `toml:"rows"`
	Columns      int    `toml:"columns"`
	HoldDuration string `toml:"hold_duration"`
}

// LoadVenueFile decodes the TOML file at path.
func LoadVenueFile(path string) (VenueFile, error) {
	var vf VenueFile
	md, err := toml.DecodeFile(path, &vf)
	if err != nil {
		return VenueFile{}, fmt.Errorf("venue file parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return VenueFile{}, fmt.Errorf("venue file %s: unknown key %q", path, undecoded[0].String())
	}
	return vf, nil
}

func (vf VenueFile) apply(cfg *Config) error {
	if vf.Rows != 0 {
		cfg.Rows = vf.Rows
	}
	if vf.Columns != 0 {
		cfg.Columns = vf.Columns
	}
	if vf.HoldDuration != "" {
		d, err := time.ParseDuration(vf.HoldDuration)
		if err != nil {
			return fmt.Errorf("%w: venue file hold_duration %q: %v", ErrInvalidConfig, vf.HoldDuration, err)
		}
		cfg.HoldDuration = d
	}
	return nil
}
