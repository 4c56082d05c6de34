//go:build !unix

package script

import "os/exec"

// killProcessGroup keeps the default behaviour of killing only the child;
// WaitDelay still bounds how long Wait blocks on its pipes.
func killProcessGroup(cmd *exec.Cmd) {}
