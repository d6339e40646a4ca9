package cmd

import (
	"github.com/etnz/income"
	"github.com/etnz/income/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	var fields predict.Set
	for _, f := range income.Fields {
		fields = append(fields, f.String())
	}
	topics := predict.Set{"*"}
	if all, err := docs.GetAllTopics(); err == nil {
		topics = append(topics, all...)
	}
	locales := predict.Set{"en-US", "en-GB", "fr-FR", "de-DE", "es-ES", "it-IT", "nl-NL", "ja-JP", "zh-CN"}

	table := &complete.Command{
		Flags: map[string]complete.Predictor{
			"fmp-api-key": predict.Something,
			"sort":        fields,
			"dir":         predict.Set{"asc", "desc"},
			"format":      predict.Set(formats),
			"locale":      locales,
		},
	}
	for _, b := range boundFlags {
		table.Flags[b.name] = predict.Something
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"serve": {
				Flags: map[string]complete.Predictor{
					"fmp-api-key": predict.Something,
					"addr":        predict.Something,
					"locale":      locales,
				},
			},
			"table":    table,
			"topic":    {Args: topics},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
		Flags: map[string]complete.Predictor{
			"v": predict.Nothing,
		},
	}
}

// Complete runs the shell completion when the program is invoked by the shell
// for it, and exits. It returns otherwise.
//
// Install with COMP_INSTALL=1 <name>.
func Complete(name string) {
	completion().Complete(name)
}
