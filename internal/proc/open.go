package proc

import (
	"os/exec"
	"runtime"
)

// OpenerCommand returns the platform command that shows target in the
// user's default application.
func OpenerCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// OpenerAvailable reports whether the opener binary is on PATH.
func OpenerAvailable() (string, bool) {
	name, _ := OpenerCommand(runtime.GOOS, "")
	p, err := exec.LookPath(name)
	return p, err == nil
}

// Open shows target (a path or URL) in an external viewer.
func (s *Supervisor) Open(target string) (*Child, error) {
	name, args := OpenerCommand(runtime.GOOS, target)
	return s.Start(name, exec.Command(name, args...))
}
