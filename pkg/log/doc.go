/*
Package log provides structured logging for stow using zerolog.

It wraps zerolog to give component-specific loggers, configurable levels,
and a handful of helpers for the logging patterns stow's packages repeat:
bucket manager bookkeeping, transaction lifecycle, and ORM save/load calls
all want a child logger tagged with their own component name plus whatever
bucket or model they're currently touching.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	kvLog := log.WithComponent("kv")
	kvLog.Debug().Str("bucket", "nodes").Msg("bucket created")

	ormLog := log.WithModel("User")
	ormLog.Info().Msg("record saved")

# Design

A single package-level zerolog.Logger is initialized once via Init and
read from every other package; component loggers are derived from it with
.With() rather than constructed independently, so a single log.Init call
governs level and output for the whole process. Console output is used
unless Config.JSONOutput is set, which selects JSON output.

# See also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
