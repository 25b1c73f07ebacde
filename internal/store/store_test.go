// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-mod-config/internal/modconfig"
)

var (
	maxPlayersDecl = modconfig.Declaration{
		Path:    "world.maxPlayers",
		Comment: "player cap",
		Kind:    modconfig.KindInt,
		Default: modconfig.IntValue(10),
		Min:     modconfig.IntValue(1),
		Max:     modconfig.IntValue(50),
	}
	ratioDecl = modconfig.Declaration{
		Path:    "ratio",
		Kind:    modconfig.KindFloat,
		Default: modconfig.FloatValue(0.5),
		Min:     modconfig.FloatValue(0),
		Max:     modconfig.FloatValue(1),
	}
	debugDecl = modconfig.Declaration{
		Path:            "debugMode",
		Kind:            modconfig.KindBool,
		Default:         modconfig.BoolValue(false),
		RequiresRestart: true,
	}
	difficultyDecl = modconfig.Declaration{
		Path:    "world.difficulty",
		Kind:    modconfig.KindEnum,
		Default: modconfig.EnumValue(1),
		Domain:  []string{"EASY", "NORMAL", "HARD"},
	}
)

func exampleSchema() modconfig.Schema {
	return modconfig.Schema{
		ModuleID:         "example",
		Type:             modconfig.TypeCommon,
		Declarations:     []modconfig.Declaration{maxPlayersDecl, ratioDecl, debugDecl, difficultyDecl},
		CategoryComments: map[string]string{"world": "world settings"},
	}
}
