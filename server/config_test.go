package server

import (
	"os"
	"testing"
	"time"

	utils "github.com/palacegame/palace/internal"
)

func TestLoadConfig(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGIN", "AI_THINK_DELAY", "AI_DIFFICULTY"} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	utils.AssertNoError(t, err)

	utils.AssertEqual(t, cfg.Port, 8000)
	utils.AssertEqual(t, cfg.AllowedOrigin, "*")
	utils.AssertEqual(t, cfg.AIDelay, 800*time.Millisecond)
	utils.AssertEqual(t, cfg.Difficulty, "medium")

	t.Run("environment overrides the defaults", func(t *testing.T) {
		os.Setenv("PORT", "9001")
		os.Setenv("AI_DIFFICULTY", "hard")
		defer os.Unsetenv("PORT")
		defer os.Unsetenv("AI_DIFFICULTY")

		cfg, err := LoadConfig()
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, cfg.Port, 9001)
		utils.AssertEqual(t, cfg.Difficulty, "hard")
	})
}
