package templates

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// TemplatesFile is the YAML document shape: templates and modifiers
// keyed by ID. The key wins over any id field inside the body.
type TemplatesFile struct {
	Templates map[string]*entities.DungeonTemplate `yaml:"templates"`
	Modifiers map[string]*entities.Modifier        `yaml:"modifiers"`
}

// LoadFile parses one YAML file and registers its contents
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 // designer-supplied data path
	if err != nil {
		return errors.Wrapf(err, "failed to read template file %s", path)
	}

	var file TemplatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse template YAML "+path)
	}

	for id, tpl := range file.Templates {
		tpl.ID = id
		if err := r.RegisterTemplate(tpl); err != nil {
			return errors.Wrapf(err, "template %q in %s", id, path)
		}
	}
	for id, mod := range file.Modifiers {
		mod.ID = id
		if err := r.RegisterModifier(mod); err != nil {
			return errors.Wrapf(err, "modifier %q in %s", id, path)
		}
	}
	return nil
}

// LoadDir loads every .yaml/.yml file in a directory
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to read template directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// validateTemplate applies the fail-fast template checks shared with the
// generator: a template that passes here can always start placement.
func validateTemplate(tpl *entities.DungeonTemplate) error {
	vb := errors.NewValidationBuilder()

	if len(tpl.Distribution) == 0 {
		vb.InvalidField("distribution", "must define at least one room type")
	}
	for _, e := range tpl.Distribution {
		if !knownRoomType(e.Type) {
			vb.Fieldf("distribution", "unknown room type %q", e.Type)
		}
		if e.Weight < 0 {
			vb.Fieldf("distribution", "room type %q has negative weight", e.Type)
		}
	}
	if tpl.RoomCount.Min < 2 {
		vb.InvalidField("room_count.min", "must be at least 2")
	}
	if tpl.RoomCount.Max < tpl.RoomCount.Min {
		vb.InvalidField("room_count.max", "must not be below min")
	}
	if tpl.HasMiniboss() && tpl.RoomCount.Min < 3 {
		vb.InvalidField("room_count.min", "must be at least 3 when a miniboss is defined")
	}
	if tpl.CellSize <= 0 {
		vb.InvalidField("cell_size", "must be positive")
	}
	if tpl.DefaultRoomSize.Width <= 0 || tpl.DefaultRoomSize.Depth <= 0 {
		vb.InvalidField("default_room_size", "width and depth must be positive")
	}
	if tpl.Boss.Kind == "" {
		vb.RequiredField("boss.kind")
	}

	return vb.Build()
}

func knownRoomType(rt entities.RoomType) bool {
	switch rt {
	case entities.RoomTypeEntrance, entities.RoomTypeCombat, entities.RoomTypePuzzle,
		entities.RoomTypeTreasure, entities.RoomTypeRest, entities.RoomTypeMiniboss,
		entities.RoomTypeBoss:
		return true
	default:
		return false
	}
}
