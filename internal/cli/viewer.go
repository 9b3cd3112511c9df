package cli

import (
	"fmt"
	"os/exec"
	"runtime"
)

// viewerCommand returns the command that opens path in the platform's
// default image viewer. With wait set, the command runs until the viewer
// exits where the platform allows it.
func viewerCommand(goos, path string, wait bool) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		if wait {
			return exec.Command("open", "-W", path), nil
		}
		return exec.Command("open", path), nil
	case "windows":
		if wait {
			return exec.Command("cmd", "/c", "start", "/wait", "", path), nil
		}
		return exec.Command("cmd", "/c", "start", "", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("no image viewer known for %s; use --output to save the layout instead", goos)
	}
}

// viewerWaits reports whether the waiting form of viewerCommand blocks
// until the viewer is closed. xdg-open returns once the file is handed off.
func viewerWaits(goos string) bool {
	return goos == "darwin" || goos == "windows"
}

// openViewer shows path. Unless foreground is set the viewer is detached
// and the call returns as soon as it has started.
func openViewer(path string, foreground bool) error {
	cmd, err := viewerCommand(runtime.GOOS, path, foreground)
	if err != nil {
		return err
	}
	if foreground {
		return cmd.Run()
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start image viewer: %w", err)
	}
	return cmd.Process.Release()
}
