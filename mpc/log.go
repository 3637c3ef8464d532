package mpc

import "github.com/consensys/gnark/logger"

// log is the package-level structured logger every exported ceremony
// operation emits start/stop events through. gnark's own logger package
// wraps zerolog and is already a transitive dependency of the teacher's
// gnark import; reusing it here means New/Contribute/Verify share the same
// log sink and verbosity controls (logger.Disable(), logger.SetOutput)
// that gnark's own Setup/Prove/Verify calls use.
var log = logger.Logger()
