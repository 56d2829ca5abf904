// Package cli is the lambdex command line.
//
// Every command reads a tree document (YAML or JSON) from a file argument or
// standard input:
//
//	lambdex compile tree.yaml                # (u) => !(u.Name === 'Ashot')
//	lambdex compile --dialect expr tree.yaml # !(u.Name == "Ashot")
//	lambdex eval --arg '{Name: Ashot}' tree.yaml
//	lambdex fmt --format json tree.yaml
//	lambdex tree tree.yaml
//
// Global flags configure logging (--log-level, --log-format, ...) and, when
// built with the pprof tag, profiling (--pprof-mode, --pprof-dir). Defaults
// for any flag may be set in $XDG_CONFIG_HOME/lambdex/config.yaml; lambdex
// init writes the current values there.
package cli
