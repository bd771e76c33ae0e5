package activity

import "github.com/rcliao/cropcal/internal/model"

type stageRule struct {
	stage    model.Stage
	keywords []string
}

// stageRules are evaluated in order; the first rule with a matching keyword wins.
var stageRules = []stageRule{
	{model.StageHarvest, []string{"harvest", "cut", "store"}},
	{model.StageMaturity, []string{"mature", "yellow", "stop watering"}},
	{model.StageReproductive, []string{"flower", "panicle", "grain forming", "pod"}},
	{model.StageVegetative, []string{"transplant", "sow", "nursery", "land prep"}},
}

// InferStage maps a raw source-language weekly text to a growth stage.
// Text matching no rule is Vegetative.
func InferStage(raw string) model.Stage {
	for _, r := range stageRules {
		for _, kw := range r.keywords {
			if containsFold(raw, kw) {
				return r.stage
			}
		}
	}
	return model.StageVegetative
}
