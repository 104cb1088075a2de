package predictor

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// LabelEncoder maps category names to dense integer ids. Classes are stored in
// id order.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder over classes. Duplicates are rejected.
func NewLabelEncoder(classes []string) (*LabelEncoder, error) {
	e := &LabelEncoder{classes: classes, index: make(map[string]int, len(classes))}
	for i, c := range classes {
		if _, dup := e.index[c]; dup {
			return nil, fmt.Errorf("duplicate class %q", c)
		}
		e.index[c] = i
	}
	return e, nil
}

func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	var raw struct {
		Classes []string `json:"classes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Classes) == 0 {
		return fmt.Errorf("label encoder has no classes")
	}
	built, err := NewLabelEncoder(raw.Classes)
	if err != nil {
		return err
	}
	*e = *built
	return nil
}

// Transform returns the id of value.
func (e *LabelEncoder) Transform(value string) (int, bool) {
	id, ok := e.index[value]
	return id, ok
}

// InverseTransform returns the class with id.
func (e *LabelEncoder) InverseTransform(id int) (string, bool) {
	if id < 0 || id >= len(e.classes) {
		return "", false
	}
	return e.classes[id], true
}

// Classes returns a copy of the vocabulary in id order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// OneHotEncoder expands one categorical value into indicator features named
// "{Feature}_{category}". The Drop category, when set, has no feature of its
// own and encodes as all zeros.
type OneHotEncoder struct {
	Feature    string   `json:"feature"`
	Categories []string `json:"categories"`
	Drop       string   `json:"drop,omitempty"`
}

// FeatureNames lists the produced feature names in category order.
func (e *OneHotEncoder) FeatureNames() []string {
	names := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if e.Drop != "" && c == e.Drop {
			continue
		}
		names = append(names, e.Feature+"_"+c)
	}
	return names
}

// Transform writes the indicator features of value into dst. It reports false,
// leaving dst untouched, for values outside Categories.
func (e *OneHotEncoder) Transform(value string, dst map[string]float64) bool {
	known := false
	for _, c := range e.Categories {
		if c == value {
			known = true
			break
		}
	}
	if !known {
		return false
	}
	for _, c := range e.Categories {
		if e.Drop != "" && c == e.Drop {
			continue
		}
		v := 0.0
		if c == value {
			v = 1.0
		}
		dst[e.Feature+"_"+c] = v
	}
	return true
}

func (e *OneHotEncoder) validate() error {
	if e.Feature == "" {
		return fmt.Errorf("one-hot encoder has no feature name")
	}
	if len(e.Categories) == 0 {
		return fmt.Errorf("one-hot encoder %s has no categories", e.Feature)
	}
	if e.Drop != "" {
		for _, c := range e.Categories {
			if c == e.Drop {
				return nil
			}
		}
		return fmt.Errorf("one-hot encoder %s drops unknown category %q", e.Feature, e.Drop)
	}
	return nil
}
