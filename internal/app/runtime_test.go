package app

import "testing"

func TestRefreshTestMode(t *testing.T) {
	t.Setenv("ALTAN_TEST_MODE", "1")
	RefreshTestMode()
	if !InTestMode() {
		t.Fatal("expected test mode on")
	}

	t.Setenv("ALTAN_TEST_MODE", "")
	RefreshTestMode()
	if InTestMode() {
		t.Fatal("expected test mode off")
	}
}
