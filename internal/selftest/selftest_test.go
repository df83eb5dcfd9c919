package selftest

import (
	"context"
	"io"
	"testing"

	"github.com/foodsaver/foodsaver-backend/pkg/logger"
)

func TestRunPasses(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "selftest-test", Output: io.Discard})
	if err := Run(context.Background(), logg); err != nil {
		t.Fatalf("self-test failed: %v", err)
	}
}
