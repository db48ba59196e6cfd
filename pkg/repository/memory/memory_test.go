package memory_test

import (
	"testing"

	"github.com/secmon-lab/scanhook/pkg/repository/memory"
	"github.com/secmon-lab/scanhook/pkg/repository/testhelper"
)

func TestMemoryScanLedger(t *testing.T) {
	testhelper.TestScanLedger(t, memory.New())
}

func TestMemorySubscriptionRegistry(t *testing.T) {
	testhelper.TestSubscriptionRegistry(t, memory.New())
}
