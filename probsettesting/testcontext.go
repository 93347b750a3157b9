package probsettesting

import (
	"path/filepath"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
	// Dir is a scratch directory removed when the test ends.
	Dir string
}

type TestConfig struct {
	// Seed fixes the generated data so that it is the same from run to run.
	Seed            int64
	TestLabelPrefix string
}

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T:   t,
		Dir: t.TempDir(),
	}
	logger.New("NOOP")
	t.Cleanup(func() { logger.OnExit() })
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// Path returns name joined to the scratch directory.
func (c *TestContext) Path(name string) string {
	return filepath.Join(c.Dir, name)
}
