package testutil

import (
	"sync"

	"github.com/dalemusser/assetdesk/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var bootOnce sync.Once

// BootTemplates loads the shared layout and boots a template engine with
// every set registered so far. Feature packages call it from TestMain after
// their own templates registered in init.
func BootTemplates() {
	bootOnce.Do(func() {
		resources.LoadSharedTemplates()
		logger := zap.NewNop()
		eng := templates.New(false)
		if err := eng.Boot(logger); err != nil {
			panic("boot templates: " + err.Error())
		}
		templates.UseEngine(eng, logger)
	})
}
