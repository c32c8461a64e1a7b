package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	path2 "path"

	"github.com/gethiox/paralexui/internal/pkg/adapter"
	"github.com/gethiox/paralexui/internal/pkg/knob"
	"github.com/gethiox/paralexui/internal/pkg/param"
	"gopkg.in/yaml.v3"
)

type YamlItem struct {
	Label  string `yaml:"label"`
	Symbol string `yaml:"symbol"`
}

type YamlParameter struct {
	ID              string     `yaml:"id"`
	Name            string     `yaml:"name"`
	Symbol          string     `yaml:"symbol"`
	SymbolName      string     `yaml:"symbol_name"`
	Kind            string     `yaml:"kind"`
	Min             *float64   `yaml:"min"`
	Max             *float64   `yaml:"max"`
	Positive        *bool      `yaml:"positive"`
	Decimals        *int       `yaml:"decimals"`
	HideZeroDecimal *bool      `yaml:"hide_zero_decimal"`
	Optional        bool       `yaml:"optional"`
	Semitones       *bool      `yaml:"semitones"`
	Items           []YamlItem `yaml:"items"`
	Default         *float64   `yaml:"default"`
	Role            string     `yaml:"role"`
}

type YamlKnob struct {
	Parameter    string   `yaml:"parameter"`
	Type         string   `yaml:"type"`
	Color        string   `yaml:"color"`
	Title        *string  `yaml:"title"`
	Subtitle     *string  `yaml:"subtitle"`
	ShowSubtitle *bool    `yaml:"show_subtitle"`
	ShowIcon     *bool    `yaml:"show_icon"`
	StateSource  string   `yaml:"state_source"`
	OnThreshold  *float64 `yaml:"on_threshold"`
	Popover      string   `yaml:"popover"`
	Enabled      *bool    `yaml:"enabled"`
}

type YamlPanel struct {
	Name       string          `yaml:"name"`
	Parameters []YamlParameter `yaml:"parameters"`
	Knobs      []YamlKnob      `yaml:"knobs"`
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// makeAdapter builds the adapter of a parameter kind, the bool reports a
// -1..1 normalized domain.
func makeAdapter(p YamlParameter) (*adapter.Adapter, bool, error) {
	kind := Kind(p.Kind)
	positive := boolOr(p.Positive, true)

	needRange := func() (float64, float64, error) {
		if p.Min == nil || p.Max == nil {
			return 0, 0, fmt.Errorf("kind %s requires min and max", kind)
		}
		return *p.Min, *p.Max, nil
	}

	switch kind {
	case KindPercent:
		return adapter.Percent(positive), !positive, nil
	case KindMIDI:
		a, err := adapter.MIDI(int(floatOr(p.Min, 0)), int(floatOr(p.Max, 127)))
		return a, false, err
	case KindTranspose:
		return adapter.Transpose(boolOr(p.Semitones, true)), true, nil
	case KindInt:
		min, max, err := needRange()
		if err != nil {
			return nil, false, err
		}
		a, err := adapter.Int(int(min), int(max), positive, p.Optional)
		return a, false, err
	case KindReal:
		min, max, err := needRange()
		if err != nil {
			return nil, false, err
		}
		a, err := adapter.Real(min, max, positive)
		return a, false, err
	case KindFactor:
		min, max, err := needRange()
		if err != nil {
			return nil, false, err
		}
		a, err := adapter.Factor(min, max, positive)
		return a, false, err
	case KindEnumeration:
		items := make([]adapter.Item, 0, len(p.Items))
		for _, item := range p.Items {
			if item.Label == "" {
				return nil, false, fmt.Errorf("enumeration item without label")
			}
			items = append(items, adapter.Item{Label: item.Label, Symbol: item.Symbol})
		}
		a, err := adapter.Enumeration(items)
		return a, false, err
	case KindBool:
		return adapter.Bool(), false, nil
	case KindIdentity:
		return adapter.Identity(), false, nil
	}
	return nil, false, fmt.Errorf("unsupported kind: %s", p.Kind)
}

func parseParameter(p YamlParameter) (Parameter, error) {
	if !SupportedKinds[Kind(p.Kind)] {
		return Parameter{}, fmt.Errorf("unsupported kind: %q", p.Kind)
	}

	role, ok := SupportedRoles[p.Role]
	if !ok {
		return Parameter{}, fmt.Errorf("unsupported role: %q", p.Role)
	}

	a, bipolar, err := makeAdapter(p)
	if err != nil {
		return Parameter{}, err
	}

	if p.Decimals != nil {
		err = a.SetDecimals(*p.Decimals)
		if err != nil {
			return Parameter{}, err
		}
	}
	if p.HideZeroDecimal != nil {
		a.SetHideZeroDecimal(*p.HideZeroDecimal)
	}

	var def float64
	if p.Default != nil {
		def = a.SetValue(*p.Default)
		lower := 0.0
		if bipolar {
			lower = -1
		}
		if def < lower-1e-9 || def > 1+1e-9 {
			return Parameter{}, fmt.Errorf("default value %v outside of %s range", *p.Default, a)
		}
	}

	return Parameter{
		ID:         param.Identifier(p.ID),
		Name:       p.Name,
		Symbol:     p.Symbol,
		SymbolName: p.SymbolName,
		Kind:       Kind(p.Kind),
		Role:       role,
		Bipolar:    bipolar,
		Adapter:    a,
		Default:    def,
	}, nil
}

func parseKnob(k YamlKnob, known map[param.Identifier]bool) (Knob, error) {
	knobType := KnobType(k.Type)
	if knobType == "" {
		knobType = KnobSlider
	}
	if !SupportedKnobTypes[knobType] {
		return Knob{}, fmt.Errorf("unsupported knob type: %q", k.Type)
	}

	id := param.Identifier(k.Parameter)
	if id != "" && !known[id] {
		return Knob{}, fmt.Errorf("unknown parameter: %s", id)
	}

	source := param.Identifier(k.StateSource)
	if source != "" && !known[source] {
		return Knob{}, fmt.Errorf("unknown state source: %s", source)
	}

	result := Knob{
		Parameter:    id,
		Type:         knobType,
		Title:        k.Title,
		Subtitle:     k.Subtitle,
		ShowSubtitle: boolOr(k.ShowSubtitle, true),
		ShowIcon:     boolOr(k.ShowIcon, true),
		StateSource:  source,
		OnThreshold:  k.OnThreshold,
		Popover:      k.Popover,
		Enabled:      boolOr(k.Enabled, true),
	}

	if k.Color != "" {
		c, err := knob.ParseColor(k.Color)
		if err != nil {
			return Knob{}, err
		}
		result.Color = &c
	}
	return result, nil
}

func ParseData(data []byte) (Panel, error) {
	cfg := YamlPanel{}

	d := yaml.NewDecoder(bytes.NewReader(data))
	d.KnownFields(true)

	err := d.Decode(&cfg)
	if err != nil {
		return Panel{}, fmt.Errorf("parsing yaml failed: %w", err)
	}

	if cfg.Name == "" {
		return Panel{}, fmt.Errorf("[name] panel name not set")
	}

	var parameters []Parameter
	var known = make(map[param.Identifier]bool)

	for i, raw := range cfg.Parameters {
		if raw.ID == "" {
			return Panel{}, fmt.Errorf("[parameters] %d: id not set", i)
		}
		if known[param.Identifier(raw.ID)] {
			return Panel{}, fmt.Errorf("[parameters] %s: duplicated id", raw.ID)
		}

		p, err := parseParameter(raw)
		if err != nil {
			return Panel{}, fmt.Errorf("[parameters] %s: %w", raw.ID, err)
		}
		known[p.ID] = true
		parameters = append(parameters, p)
	}

	var knobs []Knob
	for i, raw := range cfg.Knobs {
		k, err := parseKnob(raw, known)
		if err != nil {
			return Panel{}, fmt.Errorf("[knobs] %d (%s): %w", i, raw.Parameter, err)
		}
		knobs = append(knobs, k)
	}

	return Panel{
		Name:       cfg.Name,
		Parameters: parameters,
		Knobs:      knobs,
	}, nil
}

func readPanelConfig(path, configType string) (PanelFile, error) {
	fd, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return PanelFile{}, fmt.Errorf("opening config file failed: %w", err)
	}
	defer fd.Close()

	data, err := io.ReadAll(fd)
	if err != nil {
		return PanelFile{}, fmt.Errorf("reading file data failed: %w", err)
	}

	conf, err := ParseData(data)
	if err != nil {
		return PanelFile{}, err
	}

	return PanelFile{
		ConfigFile: path2.Base(path),
		ConfigType: configType,
		Panel:      conf,
	}, nil
}
