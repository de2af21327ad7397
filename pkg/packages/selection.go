// SPDX-License-Identifier: MPL-2.0

package packages

import (
	"github.com/bee2/packloader/pkg/proptree"
)

// Default materials.
const (
	DefaultSkyboxMaterial = "sky_black"
	DefaultGooMaterial    = "nature/toxicslime_a2_bridge_intro"
)

type (
	// Voice is a quote pack.
	Voice struct {
		Identity
		SelItem

		// Config is voice/<file>.voice, an empty block when absent.
		Config *proptree.Property
	}

	// Skybox is a selectable skybox.
	Skybox struct {
		Identity
		SelItem

		Material string
		// Config is skybox/<config>.cfg, an empty block when absent.
		Config *proptree.Property
	}

	// Goo is a selectable goo appearance.
	Goo struct {
		Identity
		SelItem

		Material      string
		CheapMaterial string
		// Config is goo/<config>, an empty block when absent.
		Config *proptree.Property
	}

	// Music is a selectable music track.
	Music struct {
		Identity
		SelItem

		// Instance is the instance file placed for the track.
		Instance string
		// Config is music/<config>, an empty block when absent.
		Config *proptree.Property
	}
)

// Category implements Object.
func (*Voice) Category() Category { return CategoryQuotePack }

// Category implements Object.
func (*Skybox) Category() Category { return CategorySkybox }

// Category implements Object.
func (*Goo) Category() Category { return CategoryGoo }

// Category implements Object.
func (*Music) Category() Category { return CategoryMusic }

func parseVoice(env *parseEnv) (Object, error) {
	sel, err := parseSelItem(env.node)
	if err != nil {
		return nil, err
	}
	var path string
	if file := env.node.Get("file", ""); file != "" {
		path = "voice/" + file + ".voice"
	}
	config, err := env.readConfig(path)
	if err != nil {
		return nil, err
	}
	return &Voice{SelItem: sel, Config: config}, nil
}

func parseSkybox(env *parseEnv) (Object, error) {
	sel, err := parseSelItem(env.node)
	if err != nil {
		return nil, err
	}
	var path string
	if name := env.node.Get("config", ""); name != "" {
		path = "skybox/" + name + ".cfg"
	}
	config, err := env.readConfig(path)
	if err != nil {
		return nil, err
	}
	return &Skybox{
		SelItem:  sel,
		Material: env.node.Get("material", DefaultSkyboxMaterial),
		Config:   config,
	}, nil
}

func parseGoo(env *parseEnv) (Object, error) {
	sel, err := parseSelItem(env.node)
	if err != nil {
		return nil, err
	}
	var path string
	if name := env.node.Get("config", ""); name != "" {
		path = "goo/" + name
	}
	config, err := env.readConfig(path)
	if err != nil {
		return nil, err
	}
	mat := env.node.Get("material", DefaultGooMaterial)
	return &Goo{
		SelItem:       sel,
		Material:      mat,
		CheapMaterial: env.node.Get("material_cheap", mat),
		Config:        config,
	}, nil
}

func parseMusic(env *parseEnv) (Object, error) {
	sel, err := parseSelItem(env.node)
	if err != nil {
		return nil, err
	}
	inst, err := env.node.Require("instance")
	if err != nil {
		return nil, err
	}
	var path string
	if name := env.node.Get("config", ""); name != "" {
		path = "music/" + name
	}
	config, err := env.readConfig(path)
	if err != nil {
		return nil, err
	}
	return &Music{SelItem: sel, Instance: inst, Config: config}, nil
}

func (s *Skybox) merge(over *Skybox) {
	s.Authors = append(s.Authors, over.Authors...)
	s.Config.Append(over.Config.Children...)
}

func (g *Goo) merge(over *Goo) {
	g.Authors = append(g.Authors, over.Authors...)
	g.Config.Append(over.Config.Children...)
}

func (m *Music) merge(over *Music) {
	m.Authors = append(m.Authors, over.Authors...)
	m.Config.Append(over.Config.Children...)
}
