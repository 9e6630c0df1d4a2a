package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/importer"
)

// completion describes the command line for shell completion. Install it with
// COMP_INSTALL=1 nexusctl.
func completion() *complete.Command {
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"user-add": {Flags: map[string]complete.Predictor{
				"u": predict.Something,
				"p": predict.Something,
			}},
			"import": {Flags: map[string]complete.Predictor{
				"store": predict.Something,
				"kind": predict.Set{
					string(importer.KindUSStock),
					string(importer.KindTWStock),
					string(importer.KindFixedAsset),
					string(importer.KindLiability),
				},
				"file": predict.Or(predict.Files("*.csv"), predict.Files("*.xlsx")),
			}},
			"snapshot": {},
			"estimate": {Flags: map[string]complete.Predictor{
				"store":         predict.Something,
				"include-fixed": predict.Nothing,
				"apply":         predict.Nothing,
			}},
			"project": {Flags: map[string]complete.Predictor{
				"store":         predict.Something,
				"include-fixed": predict.Nothing,
				"age":           predict.Something,
				"savings":       predict.Something,
				"return":        predict.Something,
				"expense":       predict.Something,
				"growth":        predict.Something,
				"inflation":     predict.Something,
			}},
			"quote":    {Args: predict.Something},
			"help":     {Args: predict.Set{"user-add", "import", "snapshot", "estimate", "project", "quote"}},
			"commands": {},
			"flags":    {},
		},
	}
}
