package deskshell

import "golang.org/x/sys/unix"

// sigterm is the signal the lock orchestrator sends to the screensaver
// process on resume, and the supervisor sends to the helper on shell
// teardown, spec §4.10/§4.11.
const sigterm = int(unix.SIGTERM)
