package errors_test

import (
	"os"
	"testing"

	"github.com/dalemusser/assetdesk/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.BootTemplates()
	os.Exit(m.Run())
}
