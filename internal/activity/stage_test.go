package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/cropcal/internal/model"
)

func TestInferStage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want model.Stage
	}{
		{"harvest", "Harvest when 80% pods turn black", model.StageHarvest},
		{"cut", "Cut and collect the crop", model.StageHarvest},
		{"store", "Store with Azadirachtin", model.StageHarvest},
		{"harvest beats sow", "Sow (10\"x4\") | Harvest early", model.StageHarvest},
		{"mature", "Mature pods or seeds forming", model.StageMaturity},
		{"yellow", "leaf yellowing for maturation signals", model.StageMaturity},
		{"stop watering", "Reduce water and STOP WATERING", model.StageMaturity},
		{"flower", "Flowering / pegging period", model.StageReproductive},
		{"panicle", "Panicle emergence monitoring", model.StageReproductive},
		{"grain forming", "Apply 25% N (Grain forming stage )", model.StageReproductive},
		{"pod", "Apply 4 kg/Acre Borax | (for pod filling)", model.StageReproductive},
		{"transplant", "🚜Transplant (15-18d)|Give water after planting", model.StageVegetative},
		{"sow", "Sowing pulses or peanuts", model.StageVegetative},
		{"nursery", "Maintain nursery irrigation", model.StageVegetative},
		{"land prep", "Land prep & puddling", model.StageVegetative},
		{"default", "Check Weather", model.StageVegetative},
		{"empty", "", model.StageVegetative},
		{"localized text is not evaluated", "ಕೊಯ್ಲು ಮಾಡಿ", model.StageVegetative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferStage(tt.raw), tt.raw)
		})
	}
}
