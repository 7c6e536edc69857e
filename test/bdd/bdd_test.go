package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/hubertnosek100/hmediator/test/bdd/steps"
	"github.com/hubertnosek100/hmediator/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/application", "features/adapters"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	steps.InitializeMediatorScenario(sc)
}

func TestMain(m *testing.M) {
	// One shared in-memory database; scenarios truncate it before use
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}

	code := m.Run()
	_ = helpers.CloseSharedTestDB()
	os.Exit(code)
}
