package stackengine

import "testing"

func TestArgvNativeRequiresBinary(t *testing.T) {
	if _, err := argv(ModeNative, "", "", "", "", "/tmp/s.sps"); err == nil {
		t.Error("expected error for native mode with no binary")
	}
	args, err := argv(ModeNative, "/usr/bin/siril", "", "", "", "/tmp/s.sps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/usr/bin/siril", "-s", "/tmp/s.sps"}
	if !equalSlices(args, want) {
		t.Errorf("argv = %v, want %v", args, want)
	}
}

func TestArgvSelfContainedBundleMatchesNativeShape(t *testing.T) {
	args, err := argv(ModeSelfContainedBundle, "/opt/Siril.AppImage", "", "", "", "/tmp/s.sps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/opt/Siril.AppImage", "-s", "/tmp/s.sps"}
	if !equalSlices(args, want) {
		t.Errorf("argv = %v, want %v", args, want)
	}
}

func TestArgvContainerisedRequiresRunnerEngineAndPackage(t *testing.T) {
	if _, err := argv(ModeContainerised, "", "", "", "", "/tmp/s.sps"); err == nil {
		t.Error("expected error for containerised mode with no runner/engine/package")
	}
	args, err := argv(ModeContainerised, "", "flatpak", "siril", "org.siril.Siril", "/tmp/s.sps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"flatpak", "run", "--command=siril", "org.siril.Siril", "-s", "/tmp/s.sps"}
	if !equalSlices(args, want) {
		t.Errorf("argv = %v, want %v", args, want)
	}
}

func TestArgvUnknownMode(t *testing.T) {
	if _, err := argv(Mode("bogus"), "x", "", "", "", "/tmp/s.sps"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
