package stackengine

import "fmt"

// Mode selects how the external engine binary is invoked. All three modes
// run the identical script; they differ only in the argv prefix needed to
// reach the engine.
type Mode string

const (
	// ModeNative invokes the engine binary directly, as a normally
	// installed executable on PATH or at an absolute path.
	ModeNative Mode = "native"
	// ModeContainerised invokes the engine through a container runtime
	// (e.g. flatpak run <ref>).
	ModeContainerised Mode = "containerised"
	// ModeSelfContainedBundle invokes a self-contained executable bundle
	// (e.g. an AppImage) directly by path, the same argv shape as native.
	ModeSelfContainedBundle Mode = "self-contained-bundle"
)

// argv builds the full command line for mode, given the configured binary
// (native/self-contained-bundle) or container runner/engine/package-id
// (containerised), and the script path every mode passes identically
// via -s:
//   - native:                 <binary> -s <script>
//   - containerised:          <runner> run --command=<engine> <packageID> -s <script>
//   - self-contained-bundle:  <binary> -s <script>
func argv(mode Mode, binary, containerRunner, containerEngine, containerPackageID, scriptPath string) ([]string, error) {
	switch mode {
	case ModeNative, ModeSelfContainedBundle:
		if binary == "" {
			return nil, fmt.Errorf("stackengine: mode %q requires a binary path", mode)
		}
		return []string{binary, "-s", scriptPath}, nil
	case ModeContainerised:
		if containerRunner == "" || containerEngine == "" || containerPackageID == "" {
			return nil, fmt.Errorf("stackengine: mode %q requires a container runner, engine command, and package id", mode)
		}
		return []string{containerRunner, "run", "--command=" + containerEngine, containerPackageID, "-s", scriptPath}, nil
	default:
		return nil, fmt.Errorf("stackengine: unknown mode %q", mode)
	}
}
