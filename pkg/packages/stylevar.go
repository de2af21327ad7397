// SPDX-License-Identifier: MPL-2.0

package packages

// StyleVar is a boolean option that applies to a set of styles.
type StyleVar struct {
	Identity

	Name string
	// Styles are the ids of the styles the variable applies to.
	Styles []string
	// Enabled is the default value.
	Enabled bool
}

// Category implements Object.
func (*StyleVar) Category() Category { return CategoryStyleVar }

func parseStyleVar(env *parseEnv) (Object, error) {
	name, err := env.node.Require("name")
	if err != nil {
		return nil, err
	}
	var styles []string
	for _, s := range env.node.FindAll("Style") {
		if !s.IsBlock() {
			styles = append(styles, s.Value)
		}
	}
	return &StyleVar{
		Name:    name,
		Styles:  styles,
		Enabled: env.node.Bool("enabled", false),
	}, nil
}

func (v *StyleVar) merge(over *StyleVar) {
	v.Styles = append(v.Styles, over.Styles...)
}
