package cmd

import (
	"math"
	"testing"

	"github.com/spf13/viper"

	"github.com/archadvisor/archadvisor/internal/engine"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"result.json", "json"},
		{"result.yaml", "yaml"},
		{"result.yml", "yaml"},
		{"result.csv", "csv"},
		{"result.txt", "json"},
		{"result", "json"},
	}

	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.want {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWeightsFromViperDefaults(t *testing.T) {
	w := weightsFromViper()

	sum := w.Treatment + w.Platform + w.Runtime + w.Availability +
		w.ServiceOverlap + w.AppModTarget + w.OperatingModel +
		w.CostPosture + w.Security
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("default factor weights sum to %f, want 1.0", sum)
	}
	if w.AnswerBoost <= 1.0 {
		t.Errorf("answer boost = %f, want > 1.0", w.AnswerBoost)
	}
	if w.MaxQuestions <= 0 {
		t.Errorf("max questions = %d, want > 0", w.MaxQuestions)
	}

	defaults := engine.DefaultWeights()
	if w.FitThreshold != defaults.FitThreshold || w.StruggleThreshold != defaults.StruggleThreshold {
		t.Errorf("fit/struggle thresholds = %f/%f, want defaults %f/%f",
			w.FitThreshold, w.StruggleThreshold, defaults.FitThreshold, defaults.StruggleThreshold)
	}
	if w.HighScore != defaults.HighScore || w.MediumScore != defaults.MediumScore {
		t.Errorf("summary cutoffs = %f/%f, want defaults %f/%f",
			w.HighScore, w.MediumScore, defaults.HighScore, defaults.MediumScore)
	}
}

func TestWeightsFromViperThresholdOverrides(t *testing.T) {
	defaults := engine.DefaultWeights()
	viper.Set("weights.high_score", 72.0)
	viper.Set("weights.fit_threshold", 0.7)
	t.Cleanup(func() {
		viper.Set("weights.high_score", defaults.HighScore)
		viper.Set("weights.fit_threshold", defaults.FitThreshold)
	})

	w := weightsFromViper()
	if w.HighScore != 72.0 {
		t.Errorf("high score = %f, want configured 72.0", w.HighScore)
	}
	if w.FitThreshold != 0.7 {
		t.Errorf("fit threshold = %f, want configured 0.7", w.FitThreshold)
	}
}
