// Package errors provides coded, actionable errors for the vitrine command.
//
// Library packages (pkg/...) return plain sentinel and typed errors. The
// command layer wraps them in an *AppError carrying a registered code, a
// category and a hint, and prints them with Format.
//
// # Codes
//
//	V001  invalid route table
//	V002  invalid base path
//	V010  configuration file could not be parsed
//	V011  configuration is invalid
//	V020  server failed to start
//
// # Usage
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.FromError(err, "V011").WithSuggestion("check vitrine.json")
//	}
//
//	errors.PrintError(err)
//	// ERROR V011: Invalid configuration
//	//
//	//   server.port must be between 1 and 65535
//	//
//	//   Hint: check vitrine.json
package errors
