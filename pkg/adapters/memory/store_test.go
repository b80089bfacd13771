package memory_test

import (
	"testing"

	"github.com/lbatista/espalier/pkg/adapters/memory"
	"github.com/lbatista/espalier/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}
