package version

import "testing"

func TestEngineVersionIsDevelByDefault(t *testing.T) {
	if v := EngineVersion(); v != "devel" {
		t.Fatalf("EngineVersion() = %q, want %q (Version const is unset in tests)", v, "devel")
	}
}

func TestPrintDoesNotPanic(t *testing.T) {
	Print()
}

func TestVerboseDoesNotPanic(t *testing.T) {
	Verbose()
}
